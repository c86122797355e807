// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackwise/stackwise/internal/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(nil, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	a.Now = func() time.Time { return testNow }
	return a
}

// makeSession builds a session of n hands on the given street, with the
// correctness pattern cycling through the provided booleans.
func makeSession(id, userID, tag string, start time.Time, street models.Street, correct []bool, difficulty int, decisionMs int64) models.TrainingSession {
	hands := make([]models.TrainingHand, len(correct))
	for i, c := range correct {
		action := models.ActionCall
		userAction := action
		if !c {
			userAction = models.ActionFold
		}
		hands[i] = models.TrainingHand{
			Street:         street,
			UserAction:     userAction,
			CorrectAction:  action,
			Correct:        c,
			DecisionTimeMs: decisionMs,
			Difficulty:     difficulty,
			PlayedAt:       start.Add(time.Duration(i) * time.Minute),
		}
	}
	return models.TrainingSession{
		ID:          id,
		UserID:      userID,
		ScenarioTag: tag,
		StartedAt:   start,
		CompletedAt: start.Add(time.Hour),
		Hands:       hands,
	}
}

func TestAnalyzeUserProfileEmptyHistory(t *testing.T) {
	a := newTestAnalyzer(t)

	profile := a.AnalyzeUserProfile("u1", nil)

	if profile.OverallRating != 1000 {
		t.Errorf("overall rating = %d, want 1000", profile.OverallRating)
	}
	if len(profile.SkillDimensions) != 6 {
		t.Fatalf("dimensions = %d, want 6", len(profile.SkillDimensions))
	}
	for _, dim := range models.Dimensions() {
		m, ok := profile.SkillDimensions[dim]
		if !ok {
			t.Fatalf("missing dimension %q", dim)
		}
		if m.Current != 1000 {
			t.Errorf("%s current = %.0f, want 1000", dim, m.Current)
		}
		if m.Confidence != 0.1 {
			t.Errorf("%s confidence = %.2f, want 0.1", dim, m.Confidence)
		}
		if m.SampleSize != 0 {
			t.Errorf("%s sample size = %d, want 0", dim, m.SampleSize)
		}
		if m.Trend != 0 {
			t.Errorf("%s trend = %.2f, want 0", dim, m.Trend)
		}
	}

	style := profile.LearningStyle
	for name, got := range map[string]float64{
		"visual": style.Visual, "practical": style.Practical,
		"theoretical": style.Theoretical, "social": style.Social,
	} {
		if got != 0.25 {
			t.Errorf("style %s = %.2f, want 0.25", name, got)
		}
	}

	v := profile.LearningVelocity
	if v.SkillGainRate != 10 || v.ConsistencyScore != 0.5 ||
		v.AdaptabilityScore != 0.5 || v.RetentionRate != 0.7 {
		t.Errorf("velocity = %+v, want defaults {10 0.5 0.5 0.7}", v)
	}

	if len(profile.WeaknessPatterns) != 0 {
		t.Errorf("weakness patterns = %d, want 0", len(profile.WeaknessPatterns))
	}
}

// TestPostflopScoreEndToEnd pins the documented scoring formula on a
// 25-hand postflop history: 60% accuracy, mean difficulty 3, mean
// decision time at the 20s ideal, correctness arranged so both full
// windows sit at 60% (zero spread, consistency 1).
func TestPostflopScoreEndToEnd(t *testing.T) {
	a := newTestAnalyzer(t)

	// Two full windows of 10 at 6 correct each, plus 3/5 in the tail.
	correct := make([]bool, 25)
	for w := 0; w < 2; w++ {
		for i := 0; i < 6; i++ {
			correct[w*10+i] = true
		}
	}
	for i := 20; i < 23; i++ {
		correct[i] = true
	}

	session := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-24*time.Hour),
		models.StreetFlop, correct, 3, 20000)

	profile := a.AnalyzeUserProfile("u1", []models.TrainingSession{session})
	m := profile.SkillDimensions[models.DimensionPostflop]

	// 1000 + (0.6-0.5)*800 + (1.0-0.5)*400 + (0.6-0.6)*500 + (1.0-0.5)*200
	wantCurrent := 1000.0 + 80 + 200 + 0 + 100
	if math.Abs(m.Current-wantCurrent) > 1e-9 {
		t.Errorf("current = %.4f, want %.4f", m.Current, wantCurrent)
	}

	// 25 hands: sample factor 0.25, consistency 1.
	if math.Abs(m.Confidence-0.25) > 1e-9 {
		t.Errorf("confidence = %.4f, want 0.25", m.Confidence)
	}

	if m.SampleSize != 25 {
		t.Errorf("sample size = %d, want 25", m.SampleSize)
	}

	// Halves: first 12 hands hold 8 correct, last 13 hold 7.
	wantTrend := (7.0/13 - 8.0/12) * 100
	if math.Abs(m.Trend-wantTrend) > 1e-9 {
		t.Errorf("trend = %.4f, want %.4f", m.Trend, wantTrend)
	}

	// No preflop-relevant hands were played.
	if got := profile.SkillDimensions[models.DimensionPreflop].SampleSize; got != 0 {
		t.Errorf("preflop sample size = %d, want 0", got)
	}
}

func TestScoreBoundsExtremes(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name       string
		correct    []bool
		difficulty int
		decisionMs int64
	}{
		{"all wrong slow easy", make([]bool, 50), 1, 120000},
		{"all correct fast hard", allTrue(50), 5, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-time.Hour),
				models.StreetTurn, tt.correct, tt.difficulty, tt.decisionMs)
			profile := a.AnalyzeUserProfile("u1", []models.TrainingSession{session})

			for dim, m := range profile.SkillDimensions {
				if m.Current < 200 || m.Current > 2000 {
					t.Errorf("%s current = %.0f outside [200,2000]", dim, m.Current)
				}
				if m.Confidence < 0 || m.Confidence > 1 {
					t.Errorf("%s confidence = %.2f outside [0,1]", dim, m.Confidence)
				}
			}
		})
	}
}

func allTrue(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := newTestAnalyzer(t)

	sessions := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-48*time.Hour),
			models.StreetFlop, []bool{true, false, true, true}, 3, 18000),
		makeSession("s2", "u1", "POT_ODDS_PRACTICAL", testNow.Add(-24*time.Hour),
			models.StreetTurn, []bool{true, true, false}, 2, 12000),
	}

	p1 := a.AnalyzeUserProfile("u1", sessions)
	p2 := a.AnalyzeUserProfile("u1", sessions)

	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("profiles differ across identical runs:\n%+v\n%+v", p1, p2)
	}
}

func TestOverallRatingWeighsConfidence(t *testing.T) {
	a := newTestAnalyzer(t)

	dims := make(map[models.Dimension]SkillMetric)
	for _, dim := range models.Dimensions() {
		dims[dim] = SkillMetric{Current: 1000, Confidence: 0}
	}
	// Only postflop carries confidence, so it alone drives the rating.
	dims[models.DimensionPostflop] = SkillMetric{Current: 1600, Confidence: 0.8}

	if got := a.overallRating(dims); got != 1600 {
		t.Errorf("overall rating = %d, want 1600", got)
	}

	// No confidence anywhere falls back to the base score.
	dims[models.DimensionPostflop] = SkillMetric{Current: 1600, Confidence: 0}
	if got := a.overallRating(dims); got != 1000 {
		t.Errorf("overall rating fallback = %d, want 1000", got)
	}
}

func TestTrendRequiresTwentyHands(t *testing.T) {
	a := newTestAnalyzer(t)

	correct := make([]bool, 19)
	for i := 10; i < 19; i++ {
		correct[i] = true
	}
	session := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-time.Hour),
		models.StreetRiver, correct, 3, 20000)

	profile := a.AnalyzeUserProfile("u1", []models.TrainingSession{session})
	if got := profile.SkillDimensions[models.DimensionPostflop].Trend; got != 0 {
		t.Errorf("trend with 19 hands = %.2f, want 0", got)
	}
}

func TestConsistencyDefaultsBelowTwoWindows(t *testing.T) {
	a := newTestAnalyzer(t)

	hands := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow,
		models.StreetFlop, allTrue(15), 3, 20000).Hands

	if got := a.windowedConsistency(hands); got != 0.5 {
		t.Errorf("consistency with 1 full window = %.2f, want default 0.5", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"inverted score bounds", func(c *Config) { c.Scoring.MinScore = 3000 }, true},
		{"zero window", func(c *Config) { c.Consistency.WindowSize = 0 }, true},
		{"missing dimension weight", func(c *Config) {
			delete(c.DimensionWeights, models.DimensionBankroll)
		}, true},
		{"zero severity scale", func(c *Config) { c.Weakness.SeverityEVScale = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
