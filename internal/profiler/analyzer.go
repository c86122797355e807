// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package profiler converts raw practice-session history into a
// structured per-user skill profile.
//
// The analyzer is a pure, synchronous transformation: it performs no
// I/O, holds no locks, and is safe to invoke concurrently for different
// users. Missing data degrades to documented defaults instead of errors.
package profiler

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackwise/stackwise/internal/models"
)

// Analyzer computes user skill profiles from session history.
type Analyzer struct {
	cfg       *Config
	relevance *Relevance
	logger    zerolog.Logger

	// Now is injectable for deterministic output in tests.
	Now func() time.Time
}

// NewAnalyzer creates an Analyzer. A nil cfg or relevance selects the
// built-in defaults.
func NewAnalyzer(cfg *Config, relevance *Relevance, logger zerolog.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if relevance == nil {
		relevance = DefaultRelevance()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg:       cfg,
		relevance: relevance,
		logger:    logger.With().Str("component", "profiler").Logger(),
		Now:       time.Now,
	}, nil
}

// AnalyzeUserProfile builds the full skill profile for a user from their
// session history. An empty history yields the default profile.
func (a *Analyzer) AnalyzeUserProfile(userID string, sessions []models.TrainingSession) *UserSkillProfile {
	now := a.Now()

	if len(sessions) == 0 {
		return a.defaultProfile(userID, now)
	}

	// Work on a chronologically ordered copy; trend and velocity both
	// depend on session order.
	ordered := make([]models.TrainingSession, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})

	dims := make(map[models.Dimension]SkillMetric, len(models.Dimensions()))
	for _, dim := range models.Dimensions() {
		dims[dim] = a.analyzeDimension(dim, ordered, now)
	}

	profile := &UserSkillProfile{
		UserID:           userID,
		SkillDimensions:  dims,
		LearningStyle:    a.inferLearningStyle(ordered),
		WeaknessPatterns: a.mineWeaknessPatterns(ordered),
		LearningVelocity: a.estimateVelocity(ordered),
		LastUpdated:      now,
	}
	profile.OverallRating = a.overallRating(dims)

	a.logger.Debug().
		Str("user_id", userID).
		Int("sessions", len(ordered)).
		Int("overall_rating", profile.OverallRating).
		Int("weakness_patterns", len(profile.WeaknessPatterns)).
		Msg("profile computed")

	return profile
}

// defaultProfile is the documented profile for a user with no history.
func (a *Analyzer) defaultProfile(userID string, now time.Time) *UserSkillProfile {
	dims := make(map[models.Dimension]SkillMetric, len(models.Dimensions()))
	for _, dim := range models.Dimensions() {
		dims[dim] = a.defaultMetric(now)
	}
	v := a.cfg.Velocity
	return &UserSkillProfile{
		UserID:          userID,
		SkillDimensions: dims,
		LearningStyle: LearningStyle{
			Visual:      0.25,
			Practical:   0.25,
			Theoretical: 0.25,
			Social:      0.25,
		},
		LearningVelocity: LearningVelocity{
			SkillGainRate:     v.DefaultGainRate,
			ConsistencyScore:  v.DefaultConsistency,
			AdaptabilityScore: v.DefaultAdaptability,
			RetentionRate:     v.DefaultRetention,
		},
		OverallRating: int(a.cfg.Scoring.BaseScore),
		LastUpdated:   now,
	}
}

func (a *Analyzer) defaultMetric(now time.Time) SkillMetric {
	return SkillMetric{
		Current:        a.cfg.Scoring.BaseScore,
		Trend:          0,
		Confidence:     0.1,
		LastAssessment: now,
		SampleSize:     0,
	}
}

// analyzeDimension computes the skill metric for one dimension from the
// hands relevant to it.
func (a *Analyzer) analyzeDimension(dim models.Dimension, sessions []models.TrainingSession, now time.Time) SkillMetric {
	hands := a.relevantHands(dim, sessions)
	if len(hands) == 0 {
		return a.defaultMetric(now)
	}

	sc := a.cfg.Scoring

	accuracy := handAccuracy(hands)
	consistency := a.windowedConsistency(hands)
	difficulty := meanDifficulty(hands) / sc.MaxDifficulty
	timeEfficiency := a.timeEfficiency(hands)

	current := sc.BaseScore +
		(accuracy-sc.AccuracyOffset)*sc.AccuracyWeight +
		(consistency-sc.ConsistencyOffset)*sc.ConsistencyWeight +
		(difficulty-sc.DifficultyOffset)*sc.DifficultyWeight +
		(timeEfficiency-sc.TimeOffset)*sc.TimeWeight
	current = clamp(current, sc.MinScore, sc.MaxScore)

	sampleFactor := math.Min(1, float64(len(hands))/sc.ConfidenceSampleSize)

	return SkillMetric{
		Current:        current,
		Trend:          a.accuracyTrend(hands),
		Confidence:     math.Min(1, sampleFactor*consistency),
		LastAssessment: now,
		SampleSize:     len(hands),
	}
}

// relevantHands filters hands by the dimension's tag and street
// relevance, preserving chronological order.
func (a *Analyzer) relevantHands(dim models.Dimension, sessions []models.TrainingSession) []models.TrainingHand {
	var hands []models.TrainingHand
	for _, s := range sessions {
		if !a.relevance.TagRelevant(dim, s.ScenarioTag) {
			continue
		}
		for _, h := range s.Hands {
			if a.relevance.StreetRelevant(dim, h.Street) {
				hands = append(hands, h)
			}
		}
	}
	return hands
}

// windowedConsistency computes 1 - SpreadWeight*stddev of accuracy over
// consecutive full windows of hands, clamped to [0,1]. With fewer than
// MinWindows full windows the default applies.
func (a *Analyzer) windowedConsistency(hands []models.TrainingHand) float64 {
	cc := a.cfg.Consistency
	windows := len(hands) / cc.WindowSize
	if windows < cc.MinWindows {
		return cc.Default
	}

	accuracies := make([]float64, 0, windows)
	for w := 0; w < windows; w++ {
		window := hands[w*cc.WindowSize : (w+1)*cc.WindowSize]
		accuracies = append(accuracies, handAccuracy(window))
	}

	return clamp(1-cc.SpreadWeight*stddev(accuracies), 0, 1)
}

// accuracyTrend splits hands chronologically in half and reports the
// accuracy delta in percentage points. Too little data yields 0.
func (a *Analyzer) accuracyTrend(hands []models.TrainingHand) float64 {
	if len(hands) < a.cfg.Trend.MinHands {
		return 0
	}
	mid := len(hands) / 2
	first := handAccuracy(hands[:mid])
	second := handAccuracy(hands[mid:])
	return (second - first) * a.cfg.Trend.Scale
}

// timeEfficiency is min(1, idealTime/meanDecisionTime); instant decisions
// count as fully efficient.
func (a *Analyzer) timeEfficiency(hands []models.TrainingHand) float64 {
	var total int64
	for _, h := range hands {
		total += h.DecisionTimeMs
	}
	mean := float64(total) / float64(len(hands))
	if mean <= 0 {
		return 1
	}
	return math.Min(1, a.cfg.Scoring.IdealDecisionTimeMs/mean)
}

// overallRating is the importance- and confidence-weighted mean of
// dimension ratings, falling back to the base score at zero weight.
func (a *Analyzer) overallRating(dims map[models.Dimension]SkillMetric) int {
	var weighted, totalWeight float64
	for _, dim := range models.Dimensions() {
		m := dims[dim]
		w := a.cfg.DimensionWeights[dim] * m.Confidence
		weighted += m.Current * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return int(a.cfg.Scoring.BaseScore)
	}
	return int(math.Round(weighted / totalWeight))
}

func handAccuracy(hands []models.TrainingHand) float64 {
	if len(hands) == 0 {
		return 0
	}
	correct := 0
	for _, h := range hands {
		if h.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(hands))
}

func meanDifficulty(hands []models.TrainingHand) float64 {
	if len(hands) == 0 {
		return 0
	}
	total := 0
	for _, h := range hands {
		total += h.Difficulty
	}
	return float64(total) / float64(len(hands))
}

// stddev is the population standard deviation.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
