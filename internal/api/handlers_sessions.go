// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"net/http"

	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/events"
	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/validation"
)

// SubmitSession ingests a completed training session. The user's cached
// profile is invalidated so the next read reflects the new data.
func (h *Handler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	var req SubmitSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondAPIError(w, r, http.StatusBadRequest, verr.ToAPIError())
		return
	}
	if !req.CompletedAt.After(req.StartedAt) {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidationFailed, "completed_at must be after started_at")
		return
	}

	session := req.toModel()
	if err := h.store.InsertSession(r.Context(), session); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("session_id", session.ID).Msg("Session insert failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to store session")
		return
	}

	h.cache.DeletePrefix(cache.UserPrefix(session.UserID))

	if err := h.publisher.SessionRecorded(r.Context(), &events.SessionRecordedEvent{
		UserID:       session.UserID,
		SessionID:    session.ID,
		ScenarioTag:  session.ScenarioTag,
		HandCount:    len(session.Hands),
		MistakeCount: len(session.Mistakes),
	}); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("session_id", session.ID).Msg("Failed to publish session event")
	}

	respondSuccess(w, r, http.StatusCreated, map[string]string{
		"session_id": session.ID,
		"user_id":    session.UserID,
	})
}
