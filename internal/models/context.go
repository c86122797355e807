// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package models

// RecommendationContext carries the per-request constraints a caller
// supplies when asking for recommendations or a training plan.
//
// Validation tags are enforced at the HTTP boundary before the engine
// runs; the engine itself never sees an invalid context.
type RecommendationContext struct {
	// TimeAvailable is the training time budget in minutes.
	TimeAvailable int `json:"time_available" validate:"required,min=1,max=1440"`

	// PreferredDifficulty restricts candidates to within one step of the
	// given level. Zero means no preference.
	PreferredDifficulty int `json:"preferred_difficulty,omitempty" validate:"omitempty,min=1,max=5"`

	// FocusAreas limits recommendations to candidates touching at least
	// one of the listed dimensions. Empty means no restriction.
	FocusAreas []Dimension `json:"focus_areas,omitempty" validate:"omitempty,dive,oneof=preflop postflop psychology mathematics bankroll tournament"`

	// ExcludeScenarios drops candidates for scenarios the user has
	// already completed or dismissed.
	ExcludeScenarios []string `json:"exclude_scenarios,omitempty"`

	// LearningGoals is free-form caller intent. It is carried through
	// for downstream display and does not affect scoring.
	LearningGoals []string `json:"learning_goals,omitempty"`
}

// APIError is the JSON error envelope returned by the HTTP layer.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
