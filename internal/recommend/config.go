// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package recommend

import "fmt"

// Config collects the engine's heuristic constants. As with the
// profiler, the defaults are pinned for score compatibility and are
// isolated here so they can be tuned and tested independently of the
// pipeline control flow.
type Config struct {
	// Weakness contains weakness-candidate generation constants.
	Weakness WeaknessCandidateConfig `json:"weakness"`

	// SkillDevelopment contains skill-gap candidate constants.
	SkillDevelopment SkillDevelopmentConfig `json:"skill_development"`

	// Style contains learning-style filter constants.
	Style StyleFilterConfig `json:"style"`

	// Filter contains strict context-filter constants.
	Filter ContextFilterConfig `json:"filter"`

	// Bonus contains the final priority multipliers.
	Bonus BonusConfig `json:"bonus"`

	// Plan contains plan-sequencing constants.
	Plan PlanConfig `json:"plan"`
}

// WeaknessCandidateConfig tunes candidates generated from weakness patterns.
type WeaknessCandidateConfig struct {
	// TopPatterns is how many of the worst patterns generate candidates.
	TopPatterns int `json:"top_patterns"`

	// MaxScenarios caps scenarios drawn per pattern.
	MaxScenarios int `json:"max_scenarios"`

	// TimePerSeverity is added to the scenario base minutes per unit of
	// severity.
	TimePerSeverity float64 `json:"time_per_severity"`

	// ImprovementScale converts severity*frequency into rating points.
	ImprovementScale float64 `json:"improvement_scale"`

	// SkillMultiplierNumerator over the mean relevant dimension rating
	// yields the skill multiplier, clamped to the bounds below.
	SkillMultiplierNumerator float64 `json:"skill_multiplier_numerator"`
	SkillMultiplierMin       float64 `json:"skill_multiplier_min"`
	SkillMultiplierMax       float64 `json:"skill_multiplier_max"`
}

// SkillDevelopmentConfig tunes candidates generated from weak dimensions.
type SkillDevelopmentConfig struct {
	// WeakRatio selects dimensions below WeakRatio*overallRating.
	WeakRatio float64 `json:"weak_ratio"`

	// LowConfidence selects dimensions below this confidence even when
	// their rating is fine.
	LowConfidence float64 `json:"low_confidence"`

	// MaxDimensions caps how many weak dimensions generate candidates.
	MaxDimensions int `json:"max_dimensions"`

	// MaxScenarios caps scenarios drawn per dimension.
	MaxScenarios int `json:"max_scenarios"`

	// EasierBelow and HarderAbove shift scenario difficulty one step
	// down or up at the normalized-level thresholds.
	EasierBelow float64 `json:"easier_below"`
	HarderAbove float64 `json:"harder_above"`

	// ImprovementCeiling is the rating targeted by the improvement
	// estimate. Deliberately below the 2000 scoring cap; preserved for
	// score compatibility.
	ImprovementCeiling float64 `json:"improvement_ceiling"`

	// ImprovementRate converts the rating gap into expected points.
	ImprovementRate float64 `json:"improvement_rate"`

	// ConfidenceBoostBase caps the low-confidence improvement boost:
	// max(1, ConfidenceBoostBase - confidence).
	ConfidenceBoostBase float64 `json:"confidence_boost_base"`

	// ScoreFloor and ScoreCeiling anchor the normalized skill level:
	// (current - ScoreFloor) / (ScoreCeiling - ScoreFloor).
	ScoreFloor   float64 `json:"score_floor"`
	ScoreCeiling float64 `json:"score_ceiling"`
}

// StyleFilterConfig tunes the learning-style priority multiplier:
// clamp(Min, Max, Base + Slope*matchRatio).
type StyleFilterConfig struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Base  float64 `json:"base"`
	Slope float64 `json:"slope"`

	// Activation is the profile style score above which a style counts
	// toward the match ratio.
	Activation float64 `json:"activation"`
}

// ContextFilterConfig tunes the strict rejection filters.
type ContextFilterConfig struct {
	// TimeOverrunRatio rejects candidates whose estimated time exceeds
	// this multiple of the available time.
	TimeOverrunRatio float64 `json:"time_overrun_ratio"`

	// DifficultyTolerance is the allowed distance from the preferred
	// difficulty.
	DifficultyTolerance int `json:"difficulty_tolerance"`
}

// BonusConfig tunes the final priority multipliers.
type BonusConfig struct {
	// FastLearnerGainRate is the skill gain rate above which the fast
	// multiplier applies instead of the slow one.
	FastLearnerGainRate float64 `json:"fast_learner_gain_rate"`
	FastLearnerBonus    float64 `json:"fast_learner_bonus"`
	SlowLearnerPenalty  float64 `json:"slow_learner_penalty"`

	// TimeFitLow..TimeFitHigh is the estimated/available time ratio
	// band that earns the time-fit bonus.
	TimeFitLow   float64 `json:"time_fit_low"`
	TimeFitHigh  float64 `json:"time_fit_high"`
	TimeFitBonus float64 `json:"time_fit_bonus"`

	// HighImprovementPoints is the expected improvement above which the
	// improvement bonus applies.
	HighImprovementPoints float64 `json:"high_improvement_points"`
	HighImprovementBonus  float64 `json:"high_improvement_bonus"`
}

// PlanConfig tunes plan sequencing and milestones.
type PlanConfig struct {
	// CandidateCount is how many recommendations the plan draws from.
	CandidateCount int `json:"candidate_count"`

	// MilestoneSize is recommendations per milestone.
	MilestoneSize int `json:"milestone_size"`

	// Blend weights for pedagogical re-ordering:
	// PriorityWeight*priority + EaseWeight*(maxDifficulty-difficulty) +
	// ImprovementWeight*expectedImprovement.
	PriorityWeight    float64 `json:"priority_weight"`
	EaseWeight        float64 `json:"ease_weight"`
	ImprovementWeight float64 `json:"improvement_weight"`

	// MaxDifficulty anchors the ease term.
	MaxDifficulty float64 `json:"max_difficulty"`
}

// DefaultConfig returns the production engine constants.
func DefaultConfig() *Config {
	return &Config{
		Weakness: WeaknessCandidateConfig{
			TopPatterns:              3,
			MaxScenarios:             2,
			TimePerSeverity:          10,
			ImprovementScale:         50,
			SkillMultiplierNumerator: 2000,
			SkillMultiplierMin:       0.5,
			SkillMultiplierMax:       2.0,
		},
		SkillDevelopment: SkillDevelopmentConfig{
			WeakRatio:           0.9,
			LowConfidence:       0.7,
			MaxDimensions:       4,
			MaxScenarios:        2,
			EasierBelow:         0.3,
			HarderAbove:         0.7,
			ImprovementCeiling:  1500,
			ImprovementRate:     0.1,
			ConfidenceBoostBase: 2.0,
			ScoreFloor:          200,
			ScoreCeiling:        2000,
		},
		Style: StyleFilterConfig{
			Min:        0.7,
			Max:        1.3,
			Base:       0.7,
			Slope:      0.6,
			Activation: 0.3,
		},
		Filter: ContextFilterConfig{
			TimeOverrunRatio:    1.2,
			DifficultyTolerance: 1,
		},
		Bonus: BonusConfig{
			FastLearnerGainRate:   15,
			FastLearnerBonus:      1.2,
			SlowLearnerPenalty:    0.8,
			TimeFitLow:            0.8,
			TimeFitHigh:           1.2,
			TimeFitBonus:          1.3,
			HighImprovementPoints: 20,
			HighImprovementBonus:  1.4,
		},
		Plan: PlanConfig{
			CandidateCount:    15,
			MilestoneSize:     3,
			PriorityWeight:    0.4,
			EaseWeight:        0.3,
			ImprovementWeight: 0.3,
			MaxDifficulty:     5,
		},
	}
}

// Validate checks that the configuration is internally coherent.
func (c *Config) Validate() error {
	if c.Weakness.TopPatterns < 1 {
		return fmt.Errorf("weakness: top patterns must be at least 1, got %d", c.Weakness.TopPatterns)
	}
	if c.Weakness.MaxScenarios < 1 {
		return fmt.Errorf("weakness: max scenarios must be at least 1, got %d", c.Weakness.MaxScenarios)
	}
	if c.Weakness.SkillMultiplierMin > c.Weakness.SkillMultiplierMax {
		return fmt.Errorf("weakness: skill multiplier bounds inverted: %.2f > %.2f",
			c.Weakness.SkillMultiplierMin, c.Weakness.SkillMultiplierMax)
	}
	if c.SkillDevelopment.MaxDimensions < 1 {
		return fmt.Errorf("skill development: max dimensions must be at least 1, got %d",
			c.SkillDevelopment.MaxDimensions)
	}
	if c.SkillDevelopment.ScoreFloor >= c.SkillDevelopment.ScoreCeiling {
		return fmt.Errorf("skill development: score floor %.0f must be below ceiling %.0f",
			c.SkillDevelopment.ScoreFloor, c.SkillDevelopment.ScoreCeiling)
	}
	if c.Style.Min > c.Style.Max {
		return fmt.Errorf("style: multiplier bounds inverted: %.2f > %.2f", c.Style.Min, c.Style.Max)
	}
	if c.Filter.TimeOverrunRatio <= 0 {
		return fmt.Errorf("filter: time overrun ratio must be positive, got %.2f", c.Filter.TimeOverrunRatio)
	}
	if c.Bonus.TimeFitLow > c.Bonus.TimeFitHigh {
		return fmt.Errorf("bonus: time fit band inverted: %.2f > %.2f", c.Bonus.TimeFitLow, c.Bonus.TimeFitHigh)
	}
	if c.Plan.CandidateCount < 1 {
		return fmt.Errorf("plan: candidate count must be at least 1, got %d", c.Plan.CandidateCount)
	}
	if c.Plan.MilestoneSize < 1 {
		return fmt.Errorf("plan: milestone size must be at least 1, got %d", c.Plan.MilestoneSize)
	}
	return nil
}
