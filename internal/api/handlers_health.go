// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload for health endpoints.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime_seconds"`
}

// HealthLive reports process liveness. It never touches dependencies so
// a wedged database cannot fail the liveness probe.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, &HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports readiness to serve traffic. Readiness requires a
// reachable database.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.store != nil && h.store.Ping(r.Context()) == nil

	status := "ready"
	code := http.StatusOK
	if !dbConnected {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, r, code, &APIResponse{
		Success: dbConnected,
		Data: &HealthStatus{
			Status:            status,
			DatabaseConnected: dbConnected,
			Uptime:            time.Since(h.startTime).Seconds(),
		},
	})
}
