// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/middleware"
	"github.com/stackwise/stackwise/internal/validation"
)

// APIResponse is the standardized response wrapper for all endpoints.
type APIResponse struct {
	// Success indicates whether the request was successful.
	Success bool `json:"success"`

	// Data contains the response payload (null on error).
	Data interface{} `json:"data,omitempty"`

	// Error contains error details (null on success).
	Error *validation.APIError `json:"error,omitempty"`

	// Meta contains response metadata.
	Meta *APIMeta `json:"meta,omitempty"`
}

// APIMeta carries tracing metadata alongside the payload.
type APIMeta struct {
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Machine-readable error codes.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_ERROR"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, resp *APIResponse) {
	if resp.Meta == nil {
		resp.Meta = &APIMeta{Timestamp: time.Now().UTC()}
	}
	if resp.Meta.RequestID == "" {
		resp.Meta.RequestID = middleware.GetRequestID(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode response")
	}
}

func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, r, status, &APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, &APIResponse{
		Success: false,
		Error:   &validation.APIError{Code: code, Message: message},
	})
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *validation.APIError) {
	respondJSON(w, r, status, &APIResponse{Success: false, Error: apiErr})
}
