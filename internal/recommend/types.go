// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package recommend

import (
	"time"

	"github.com/stackwise/stackwise/internal/models"
)

// TrainingRecommendation is one ranked training suggestion. It is
// ephemeral: regenerated per request and never the source of truth.
type TrainingRecommendation struct {
	// ID uniquely identifies this recommendation instance.
	ID string `json:"id"`

	// ScenarioID names the catalog scenario to train.
	ScenarioID string `json:"scenario_id"`

	// Title and Description come from the scenario catalog.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Difficulty is the adjusted difficulty, 1..5.
	Difficulty int `json:"difficulty"`

	// EstimatedTime is the expected duration in minutes.
	EstimatedTime int `json:"estimated_time"`

	// ExpectedImprovement is the projected rating-point gain.
	ExpectedImprovement float64 `json:"expected_improvement"`

	// Priority is the engine's internal ranking score. Not shown to
	// end users directly.
	Priority float64 `json:"priority"`

	// Reasoning explains why this was recommended.
	Reasoning string `json:"reasoning"`

	// SkillFocus lists the dimensions the scenario trains.
	SkillFocus []models.Dimension `json:"skill_focus"`

	// LearningStyle lists the styles the scenario suits.
	LearningStyle []models.StyleName `json:"learning_style"`
}

// FocusesOn reports whether the recommendation trains the dimension.
func (r *TrainingRecommendation) FocusesOn(dim models.Dimension) bool {
	for _, d := range r.SkillFocus {
		if d == dim {
			return true
		}
	}
	return false
}

// PlanMilestone is a grouped checkpoint of sequential recommendations
// within a plan. Milestones form a linear prerequisite chain.
type PlanMilestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// TargetSkill is the most frequent skill focus in the batch.
	TargetSkill models.Dimension `json:"target_skill"`

	// TargetImprovement is the summed expected improvement of the batch.
	TargetImprovement float64 `json:"target_improvement"`

	// EstimatedTimeToComplete is the cumulative minutes across all
	// milestones up to and including this one.
	EstimatedTimeToComplete int `json:"estimated_time_to_complete"`

	// Prerequisites holds the previous milestone's ID, or nothing for
	// the first milestone.
	Prerequisites []string `json:"prerequisites"`

	// Rewards are optional gamification payloads attached by the
	// product layer.
	Rewards []models.Reward `json:"rewards,omitempty"`
}

// PersonalizedTrainingPlan sequences recommendations into milestones.
type PersonalizedTrainingPlan struct {
	UserID      string `json:"user_id"`
	PlanID      string `json:"plan_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	// EstimatedDuration is the total plan time in hours.
	EstimatedDuration float64 `json:"estimated_duration"`

	// ExpectedOverallImprovement is the mean expected improvement of
	// the plan's recommendations.
	ExpectedOverallImprovement float64 `json:"expected_overall_improvement"`

	Recommendations []TrainingRecommendation `json:"recommendations"`
	Milestones      []PlanMilestone          `json:"milestones"`

	CreatedAt time.Time `json:"created_at"`

	// Difficulty is the rounded mean recommendation difficulty.
	Difficulty int `json:"difficulty"`
}
