// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"fmt"

	"github.com/stackwise/stackwise/internal/models"
)

// Config collects every tunable constant used by the profiler heuristics.
// The defaults are load-bearing: downstream priority scores assume this
// scale, so change them only together with the recommendation engine.
type Config struct {
	// Scoring contains the per-dimension score combination weights.
	Scoring ScoringConfig `json:"scoring"`

	// Consistency contains the windowed-stddev parameters.
	Consistency ConsistencyConfig `json:"consistency"`

	// Trend contains the chronological-split trend parameters.
	Trend TrendConfig `json:"trend"`

	// Weakness contains the mistake-mining parameters.
	Weakness WeaknessConfig `json:"weakness"`

	// Style contains the learning-style inference parameters.
	Style StyleConfig `json:"style"`

	// Velocity contains the learning-velocity parameters.
	Velocity VelocityConfig `json:"velocity"`

	// DimensionWeights is the importance weight of each dimension in the
	// overall rating. Each weight is additionally multiplied by the
	// dimension's confidence before normalizing.
	DimensionWeights map[models.Dimension]float64 `json:"dimension_weights"`
}

// ScoringConfig holds the per-dimension score combination constants.
// A current score is base + sum of (signal - offset) * weight, clamped.
type ScoringConfig struct {
	// BaseScore is the neutral rating a dimension starts from.
	BaseScore float64 `json:"base_score"`

	// MinScore and MaxScore bound the current score.
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`

	// AccuracyWeight scales (accuracy - AccuracyOffset).
	AccuracyWeight float64 `json:"accuracy_weight"`
	AccuracyOffset float64 `json:"accuracy_offset"`

	// ConsistencyWeight scales (consistency - ConsistencyOffset).
	ConsistencyWeight float64 `json:"consistency_weight"`
	ConsistencyOffset float64 `json:"consistency_offset"`

	// DifficultyWeight scales (normalized difficulty - DifficultyOffset).
	DifficultyWeight float64 `json:"difficulty_weight"`
	DifficultyOffset float64 `json:"difficulty_offset"`

	// TimeWeight scales (time efficiency - TimeOffset).
	TimeWeight float64 `json:"time_weight"`
	TimeOffset float64 `json:"time_offset"`

	// IdealDecisionTimeMs is the target latency for full time efficiency.
	IdealDecisionTimeMs float64 `json:"ideal_decision_time_ms"`

	// MaxDifficulty normalizes hand difficulty ratings (1..MaxDifficulty).
	MaxDifficulty float64 `json:"max_difficulty"`

	// ConfidenceSampleSize is the sample count at which the sample-size
	// factor of confidence saturates at 1.
	ConfidenceSampleSize float64 `json:"confidence_sample_size"`
}

// ConsistencyConfig holds the windowed accuracy stddev parameters.
type ConsistencyConfig struct {
	// WindowSize is the number of hands per accuracy window.
	WindowSize int `json:"window_size"`

	// MinWindows is the minimum full windows required before the
	// windowed formula applies; below it the default value is used.
	MinWindows int `json:"min_windows"`

	// Default is the consistency assumed with insufficient windows.
	Default float64 `json:"default"`

	// SpreadWeight scales the stddev penalty: 1 - SpreadWeight*stddev.
	SpreadWeight float64 `json:"spread_weight"`
}

// TrendConfig holds the accuracy-trend parameters.
type TrendConfig struct {
	// MinHands is the minimum filtered hands before a trend is computed.
	MinHands int `json:"min_hands"`

	// Scale converts the accuracy delta between halves to percent.
	Scale float64 `json:"scale"`
}

// WeaknessConfig holds the mistake-mining parameters.
type WeaknessConfig struct {
	// MinOccurrences is how often a pattern must recur to materialize.
	MinOccurrences int `json:"min_occurrences"`

	// MajorMisplayEVLoss is the EV loss above which any mistake is
	// classified as a major misplay.
	MajorMisplayEVLoss float64 `json:"major_misplay_ev_loss"`

	// SeverityEVScale normalizes mean EV loss into [0,1] severity.
	SeverityEVScale float64 `json:"severity_ev_scale"`
}

// StyleConfig holds the learning-style inference parameters.
type StyleConfig struct {
	// FastDecisionMs is the mean session latency below which the
	// session signals a visual learner.
	FastDecisionMs float64 `json:"fast_decision_ms"`

	// SlowDecisionMs is the mean session latency above which the
	// session signals a theoretical learner.
	SlowDecisionMs float64 `json:"slow_decision_ms"`

	// MathMistakeWeight is added to the theoretical score for each
	// mistake made in a mathematics-relevant session.
	MathMistakeWeight float64 `json:"math_mistake_weight"`

	// Baseline is added to every normalized style score.
	Baseline float64 `json:"baseline"`

	// BaselineDenominator is added to the raw total before normalizing.
	// Together with Baseline this yields a soft scoring that does not
	// sum to 1 across styles; downstream multipliers assume this scale.
	BaselineDenominator float64 `json:"baseline_denominator"`

	// ActivationThreshold is the score above which a style counts as
	// one of the user's active styles.
	ActivationThreshold float64 `json:"activation_threshold"`
}

// VelocityConfig holds learning-velocity parameters and defaults.
type VelocityConfig struct {
	// MinSessions is the minimum session count before velocity is
	// computed; below it the defaults apply.
	MinSessions int `json:"min_sessions"`

	// GainRateScale converts the accuracy delta to rating points.
	GainRateScale float64 `json:"gain_rate_scale"`

	// AdaptabilitySpreadWeight scales the per-scenario accuracy stddev
	// penalty: 1 - AdaptabilitySpreadWeight*stddev.
	AdaptabilitySpreadWeight float64 `json:"adaptability_spread_weight"`

	// RetentionConsistencyWeight and RetentionAdaptabilityWeight blend
	// the retention estimate.
	RetentionConsistencyWeight  float64 `json:"retention_consistency_weight"`
	RetentionAdaptabilityWeight float64 `json:"retention_adaptability_weight"`

	// RetentionFloor is the minimum retention rate.
	RetentionFloor float64 `json:"retention_floor"`

	// Defaults used when history is too short.
	DefaultGainRate     float64 `json:"default_gain_rate"`
	DefaultConsistency  float64 `json:"default_consistency"`
	DefaultAdaptability float64 `json:"default_adaptability"`
	DefaultRetention    float64 `json:"default_retention"`
}

// DefaultConfig returns the production profiler constants.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			BaseScore:            1000,
			MinScore:             200,
			MaxScore:             2000,
			AccuracyWeight:       800,
			AccuracyOffset:       0.5,
			ConsistencyWeight:    400,
			ConsistencyOffset:    0.5,
			DifficultyWeight:     500,
			DifficultyOffset:     0.6,
			TimeWeight:           200,
			TimeOffset:           0.5,
			IdealDecisionTimeMs:  20000,
			MaxDifficulty:        5,
			ConfidenceSampleSize: 100,
		},
		Consistency: ConsistencyConfig{
			WindowSize:   10,
			MinWindows:   2,
			Default:      0.5,
			SpreadWeight: 2,
		},
		Trend: TrendConfig{
			MinHands: 20,
			Scale:    100,
		},
		Weakness: WeaknessConfig{
			MinOccurrences:     3,
			MajorMisplayEVLoss: 2.0,
			SeverityEVScale:    5,
		},
		Style: StyleConfig{
			FastDecisionMs:      15000,
			SlowDecisionMs:      45000,
			MathMistakeWeight:   0.5,
			Baseline:            0.25,
			BaselineDenominator: 4,
			ActivationThreshold: 0.3,
		},
		Velocity: VelocityConfig{
			MinSessions:                 2,
			GainRateScale:               1000,
			AdaptabilitySpreadWeight:    2,
			RetentionConsistencyWeight:  0.8,
			RetentionAdaptabilityWeight: 0.2,
			RetentionFloor:              0.5,
			DefaultGainRate:             10,
			DefaultConsistency:          0.5,
			DefaultAdaptability:         0.5,
			DefaultRetention:            0.7,
		},
		DimensionWeights: map[models.Dimension]float64{
			models.DimensionPreflop:     0.20,
			models.DimensionPostflop:    0.25,
			models.DimensionPsychology:  0.15,
			models.DimensionMathematics: 0.15,
			models.DimensionBankroll:    0.15,
			models.DimensionTournament:  0.10,
		},
	}
}

// Validate checks that the configuration is internally coherent.
func (c *Config) Validate() error {
	if c.Scoring.MinScore >= c.Scoring.MaxScore {
		return fmt.Errorf("scoring: min score %.0f must be below max score %.0f",
			c.Scoring.MinScore, c.Scoring.MaxScore)
	}
	if c.Scoring.BaseScore < c.Scoring.MinScore || c.Scoring.BaseScore > c.Scoring.MaxScore {
		return fmt.Errorf("scoring: base score %.0f outside [%.0f, %.0f]",
			c.Scoring.BaseScore, c.Scoring.MinScore, c.Scoring.MaxScore)
	}
	if c.Scoring.IdealDecisionTimeMs <= 0 {
		return fmt.Errorf("scoring: ideal decision time must be positive, got %.0f",
			c.Scoring.IdealDecisionTimeMs)
	}
	if c.Scoring.ConfidenceSampleSize <= 0 {
		return fmt.Errorf("scoring: confidence sample size must be positive, got %.0f",
			c.Scoring.ConfidenceSampleSize)
	}
	if c.Consistency.WindowSize < 1 {
		return fmt.Errorf("consistency: window size must be at least 1, got %d",
			c.Consistency.WindowSize)
	}
	if c.Consistency.MinWindows < 1 {
		return fmt.Errorf("consistency: min windows must be at least 1, got %d",
			c.Consistency.MinWindows)
	}
	if c.Weakness.MinOccurrences < 1 {
		return fmt.Errorf("weakness: min occurrences must be at least 1, got %d",
			c.Weakness.MinOccurrences)
	}
	if c.Weakness.SeverityEVScale <= 0 {
		return fmt.Errorf("weakness: severity EV scale must be positive, got %.1f",
			c.Weakness.SeverityEVScale)
	}
	if c.Style.BaselineDenominator <= 0 {
		return fmt.Errorf("style: baseline denominator must be positive, got %.1f",
			c.Style.BaselineDenominator)
	}
	if c.Velocity.MinSessions < 2 {
		return fmt.Errorf("velocity: min sessions must be at least 2, got %d",
			c.Velocity.MinSessions)
	}

	var total float64
	for _, dim := range models.Dimensions() {
		w, ok := c.DimensionWeights[dim]
		if !ok {
			return fmt.Errorf("dimension weights: missing weight for %q", dim)
		}
		if w < 0 {
			return fmt.Errorf("dimension weights: negative weight for %q", dim)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("dimension weights: weights sum to zero")
	}
	return nil
}
