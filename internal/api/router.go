// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stackwise/stackwise/internal/config"
	"github.com/stackwise/stackwise/internal/middleware"
)

// NewRouter builds the HTTP routing tree. Health endpoints stay outside
// the rate limiter so probes keep working under client abuse.
func NewRouter(h *Handler, cfg *config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitRequests > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitRequests,
				cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/profile/{userID}", h.GetProfile)
		r.Post("/sessions", h.SubmitSession)
		r.Post("/recommendations", h.Recommendations)
		r.Post("/plan", h.CreatePlan)
		r.Get("/plan/{planID}", h.GetPlan)
		r.Get("/users/{userID}/plans", h.ListPlans)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
