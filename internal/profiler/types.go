// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"time"

	"github.com/stackwise/stackwise/internal/models"
)

// SkillMetric is the per-dimension measurement inside a profile.
type SkillMetric struct {
	// Current is the dimension rating in [200, 2000].
	Current float64 `json:"current"`

	// Trend is the accuracy change between the older and newer half of
	// the relevant hands, in percentage points.
	Trend float64 `json:"trend"`

	// Confidence in [0,1] grows with sample size and consistency.
	Confidence float64 `json:"confidence"`

	// LastAssessment is when the metric was computed.
	LastAssessment time.Time `json:"last_assessment"`

	// SampleSize is the number of relevant hands behind the metric.
	SampleSize int `json:"sample_size"`
}

// LearningStyle holds the four soft style scores. Scores are each in
// [0,1] but intentionally do not sum to 1.
type LearningStyle struct {
	Visual      float64 `json:"visual"`
	Practical   float64 `json:"practical"`
	Theoretical float64 `json:"theoretical"`
	Social      float64 `json:"social"`
}

// Score returns the score for a named style.
func (l LearningStyle) Score(name models.StyleName) float64 {
	switch name {
	case models.StyleVisual:
		return l.Visual
	case models.StylePractical:
		return l.Practical
	case models.StyleTheoretical:
		return l.Theoretical
	case models.StyleSocial:
		return l.Social
	}
	return 0
}

// Active returns the styles scoring above the threshold, in canonical order.
func (l LearningStyle) Active(threshold float64) []models.StyleName {
	var active []models.StyleName
	for _, name := range []models.StyleName{
		models.StyleVisual,
		models.StylePractical,
		models.StyleTheoretical,
		models.StyleSocial,
	} {
		if l.Score(name) > threshold {
			active = append(active, name)
		}
	}
	return active
}

// WeaknessPattern is a recurring mistake category mined from history.
type WeaknessPattern struct {
	// Pattern is the canonical pattern name (e.g. "over-fold").
	Pattern string `json:"pattern"`

	// Frequency is the share of all mistakes in this pattern, in [0,1].
	Frequency float64 `json:"frequency"`

	// Severity is the normalized average EV loss, in [0,1].
	Severity float64 `json:"severity"`

	// Street is the most frequent street among the occurrences.
	Street models.Street `json:"street"`

	// ImprovementSuggestion is display text keyed by (pattern, street).
	ImprovementSuggestion string `json:"improvement_suggestion"`

	// Occurrences is how many times the pattern appeared.
	Occurrences int `json:"occurrences"`
}

// LearningVelocity summarizes how quickly the user improves.
type LearningVelocity struct {
	// SkillGainRate is rating points gained per hour of practice.
	SkillGainRate float64 `json:"skill_gain_rate"`

	// ConsistencyScore in [0,1] from windowed accuracy spread.
	ConsistencyScore float64 `json:"consistency_score"`

	// AdaptabilityScore in [0,1] from per-scenario accuracy variance.
	AdaptabilityScore float64 `json:"adaptability_score"`

	// RetentionRate in [0,1] blends consistency and adaptability.
	RetentionRate float64 `json:"retention_rate"`
}

// UserSkillProfile is the regenerated-on-demand profile of one user.
// It is derived state: recomputed from session history, never patched.
type UserSkillProfile struct {
	UserID string `json:"user_id"`

	// SkillDimensions always contains all six dimensions; dimensions
	// without data carry the default metric.
	SkillDimensions map[models.Dimension]SkillMetric `json:"skill_dimensions"`

	LearningStyle LearningStyle `json:"learning_style"`

	// WeaknessPatterns is ordered worst-first by frequency*severity.
	WeaknessPatterns []WeaknessPattern `json:"weakness_patterns"`

	LearningVelocity LearningVelocity `json:"learning_velocity"`

	// OverallRating is the confidence-and-importance-weighted mean of
	// dimension ratings. It is never directly observed.
	OverallRating int `json:"overall_rating"`

	LastUpdated time.Time `json:"last_updated"`
}

// WeakestDimension returns the dimension with the lowest current rating.
// Ties resolve in canonical dimension order.
func (p *UserSkillProfile) WeakestDimension() models.Dimension {
	weakest := models.DimensionPreflop
	lowest := -1.0
	for _, dim := range models.Dimensions() {
		m, ok := p.SkillDimensions[dim]
		if !ok {
			continue
		}
		if lowest < 0 || m.Current < lowest {
			lowest = m.Current
			weakest = dim
		}
	}
	return weakest
}
