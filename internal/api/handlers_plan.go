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

	"github.com/go-chi/chi/v5"

	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/database"
	"github.com/stackwise/stackwise/internal/events"
	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/recommend"
	"github.com/stackwise/stackwise/internal/validation"
)

// CreatePlan generates and persists a milestone-sequenced training plan.
// Creation is cached per user and request shape: an identical request
// within the TTL returns the already stored plan instead of minting a new
// one. New session data invalidates the entry.
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
		return
	}

	key := cache.UserKey(req.UserID, cache.GenerateKey("plan", struct {
		Context      models.RecommendationContext `json:"context"`
		DurationDays int                          `json:"duration_days"`
	}{req.Context, req.DurationDays}))

	v, err := h.cache.GetOrCompute(r.Context(), key, func(ctx context.Context) (interface{}, error) {
		profile, err := h.profileFor(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("generate profile for %s: %w", req.UserID, err)
		}

		plan, err := h.engine.GenerateTrainingPlan(profile, req.Context, req.DurationDays)
		if err != nil {
			return nil, err
		}

		if err := h.store.SavePlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("store plan %s: %w", plan.PlanID, err)
		}
		metrics.TrainingPlansGenerated.Inc()

		if err := h.publisher.PlanCreated(ctx, &events.PlanCreatedEvent{
			UserID:     req.UserID,
			PlanID:     plan.PlanID,
			Milestones: len(plan.Milestones),
		}); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("plan_id", plan.PlanID).Msg("Failed to publish plan event")
		}
		return plan, nil
	})
	if err != nil {
		if errors.Is(err, recommend.ErrInvalidContext) {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", req.UserID).Msg("Plan creation failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to create plan")
		return
	}
	plan, ok := v.(*recommend.PersonalizedTrainingPlan)
	if !ok {
		logging.Ctx(r.Context()).Error().Str("key", key).Msgf("Unexpected cache entry type %T", v)
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to create plan")
		return
	}

	respondSuccess(w, r, http.StatusCreated, plan)
}

// GetPlan returns a stored training plan by ID.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")
	if planID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "plan ID is required")
		return
	}

	plan, err := h.store.GetPlan(r.Context(), planID)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "plan not found")
		return
	}
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("plan_id", planID).Msg("Plan lookup failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to load plan")
		return
	}

	respondSuccess(w, r, http.StatusOK, plan)
}

// ListPlans returns all stored plans for a user, newest first.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "user ID is required")
		return
	}

	plans, err := h.store.PlansForUser(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("Plan listing failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to list plans")
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"plans":   plans,
	})
}
