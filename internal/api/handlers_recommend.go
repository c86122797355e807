// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/recommend"
	"github.com/stackwise/stackwise/internal/validation"
)

// Recommendations generates ranked training recommendations for a user.
// Results are cached per user and request shape, so identical requests
// skip the scoring pipeline until new session data invalidates the user's
// entries.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	count := req.Count
	if count <= 0 {
		count = h.cfg.API.DefaultRecommendationCount
	}
	if count > h.cfg.API.MaxRecommendationCount {
		count = h.cfg.API.MaxRecommendationCount
	}

	key := cache.UserKey(req.UserID, cache.GenerateKey("recommendations", struct {
		Context models.RecommendationContext `json:"context"`
		Count   int                          `json:"count"`
	}{req.Context, count}))

	v, err := h.cache.GetOrCompute(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		profile, err := h.profileFor(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("generate profile for %s: %w", req.UserID, err)
		}

		start := time.Now()
		recs, err := h.engine.GenerateRecommendations(profile, req.Context, count)
		if err != nil {
			return nil, err
		}
		metrics.RecordRecommendationRequest(time.Since(start), len(recs))
		return recs, nil
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidContext) {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", req.UserID).Msg("Recommendation generation failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to generate recommendations")
		return
	}
	recs, ok := v.([]recommend.TrainingRecommendation)
	if !ok {
		logging.Ctx(r.Context()).Error().Str("key", key).Msgf("Unexpected cache entry type %T", v)
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to generate recommendations")
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"user_id":         req.UserID,
		"recommendations": recs,
	})
}
