// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package api provides HTTP routing and handlers using the Chi router.
package api

import (
	"context"
	"time"

	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/config"
	"github.com/stackwise/stackwise/internal/events"
	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
	"github.com/stackwise/stackwise/internal/recommend"
)

// Store is the persistence surface the handlers depend on. The DuckDB
// store satisfies it in production; tests substitute an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error
	InsertSession(ctx context.Context, session *models.TrainingSession) error
	SessionsForUser(ctx context.Context, userID string) ([]*models.TrainingSession, error)
	SaveProfile(ctx context.Context, profile *profiler.UserSkillProfile) error
	GetProfile(ctx context.Context, userID string) (*profiler.UserSkillProfile, error)
	SavePlan(ctx context.Context, plan *recommend.PersonalizedTrainingPlan) error
	GetPlan(ctx context.Context, planID string) (*recommend.PersonalizedTrainingPlan, error)
	PlansForUser(ctx context.Context, userID string) ([]*recommend.PersonalizedTrainingPlan, error)
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	store     Store
	cache     *cache.Cache
	analyzer  *profiler.Analyzer
	engine    *recommend.Engine
	publisher events.Publisher
	cfg       *config.Config
	startTime time.Time
}

// NewHandler wires the handler with its dependencies.
func NewHandler(store Store, c *cache.Cache, analyzer *profiler.Analyzer, engine *recommend.Engine, publisher events.Publisher, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		cache:     c,
		analyzer:  analyzer,
		engine:    engine,
		publisher: publisher,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
