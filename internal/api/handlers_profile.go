// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/events"
	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
)

// GetProfile returns the skill profile for a user, regenerating it from
// session history when the cached copy has expired. Concurrent requests
// for the same user share one computation.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "user ID is required")
		return
	}

	profile, err := h.profileFor(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("Profile generation failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to generate profile")
		return
	}

	respondSuccess(w, r, http.StatusOK, profile)
}

// profileFor computes or retrieves the cached skill profile. A fresh
// computation is persisted and announced before it is returned.
func (h *Handler) profileFor(ctx context.Context, userID string) (*profiler.UserSkillProfile, error) {
	key := cache.UserKey(userID, "profile")
	v, err := h.cache.GetOrCompute(ctx, key, func(ctx context.Context) (interface{}, error) {
		return h.computeProfile(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	profile, ok := v.(*profiler.UserSkillProfile)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T for %s", v, key)
	}
	return profile, nil
}

func (h *Handler) computeProfile(ctx context.Context, userID string) (*profiler.UserSkillProfile, error) {
	start := time.Now()

	stored, err := h.store.SessionsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load sessions for %s: %w", userID, err)
	}
	sessions := make([]models.TrainingSession, len(stored))
	for i, s := range stored {
		sessions[i] = *s
	}

	profile := h.analyzer.AnalyzeUserProfile(userID, sessions)
	metrics.RecordProfileGeneration(time.Since(start), len(sessions))

	if err := h.store.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile for %s: %w", userID, err)
	}

	if err := h.publisher.ProfileUpdated(ctx, &events.ProfileUpdatedEvent{
		UserID:        userID,
		OverallRating: profile.OverallRating,
		SessionCount:  len(sessions),
		WeaknessCount: len(profile.WeaknessPatterns),
	}); err != nil {
		// Event delivery is best-effort: the profile is already stored.
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("Failed to publish profile event")
	}

	return profile, nil
}
