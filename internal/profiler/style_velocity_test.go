// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"math"
	"testing"
	"time"

	"github.com/stackwise/stackwise/internal/models"
)

func TestLearningStyleInference(t *testing.T) {
	a := newTestAnalyzer(t)

	// One fast practical session: visual and practical each gain a
	// point; raw total becomes 1+1+0+0+4 = 6.
	sessions := []models.TrainingSession{
		makeSession("s1", "u1", "PREFLOP_3BET_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetPreflop, allTrue(5), 2, 10000),
	}

	style := a.inferLearningStyle(sessions)

	want := 1.0/6.0 + 0.25
	if math.Abs(style.Visual-want) > 1e-9 {
		t.Errorf("visual = %.4f, want %.4f", style.Visual, want)
	}
	if math.Abs(style.Practical-want) > 1e-9 {
		t.Errorf("practical = %.4f, want %.4f", style.Practical, want)
	}
	if math.Abs(style.Theoretical-0.25) > 1e-9 {
		t.Errorf("theoretical = %.4f, want 0.25", style.Theoretical)
	}
	if math.Abs(style.Social-0.25) > 1e-9 {
		t.Errorf("social = %.4f, want 0.25", style.Social)
	}
}

func TestLearningStyleTheoryAndMathSignals(t *testing.T) {
	a := newTestAnalyzer(t)

	// A slow theory session on a mathematics scenario with two
	// mistakes: theoretical gains 1 (slow) + 1 (THEORY tag) + 2*0.5
	// (math mistakes) = 3; raw total 3+4 = 7.
	s := makeSession("s1", "u1", "EV_CALCULATION_THEORY", testNow.Add(-time.Hour),
		models.StreetTurn, []bool{true, false, false}, 3, 60000)
	s.Mistakes = []models.Mistake{
		{UserAction: models.ActionCall, CorrectAction: models.ActionFold, EVLoss: 1, Street: models.StreetTurn},
		{UserAction: models.ActionCall, CorrectAction: models.ActionFold, EVLoss: 1, Street: models.StreetRiver},
	}

	style := a.inferLearningStyle([]models.TrainingSession{s})

	want := 3.0/7.0 + 0.25
	if math.Abs(style.Theoretical-want) > 1e-9 {
		t.Errorf("theoretical = %.4f, want %.4f", style.Theoretical, want)
	}
}

func TestLearningStyleScoresCapped(t *testing.T) {
	a := newTestAnalyzer(t)

	var sessions []models.TrainingSession
	for i := 0; i < 40; i++ {
		sessions = append(sessions, makeSession("s", "u1", "EV_CALCULATION_THEORY",
			testNow.Add(time.Duration(i)*time.Hour), models.StreetTurn, allTrue(3), 3, 60000))
	}

	style := a.inferLearningStyle(sessions)
	for name, got := range map[string]float64{
		"visual": style.Visual, "practical": style.Practical,
		"theoretical": style.Theoretical, "social": style.Social,
	} {
		if got < 0 || got > 1 {
			t.Errorf("style %s = %.4f outside [0,1]", name, got)
		}
	}
}

func TestVelocityDefaultsWithOneSession(t *testing.T) {
	a := newTestAnalyzer(t)

	sessions := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetFlop, allTrue(10), 3, 20000),
	}

	v := a.estimateVelocity(sessions)
	if v.SkillGainRate != 10 || v.ConsistencyScore != 0.5 ||
		v.AdaptabilityScore != 0.5 || v.RetentionRate != 0.7 {
		t.Errorf("velocity = %+v, want defaults", v)
	}
}

func TestVelocityGainRate(t *testing.T) {
	a := newTestAnalyzer(t)

	// Accuracy improves from 0.5 to 1.0 over 10 hours:
	// (1.0-0.5)*1000/10 = 50 points/hour.
	first := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-10*time.Hour),
		models.StreetFlop, []bool{true, false, true, false}, 3, 20000)
	last := makeSession("s2", "u1", "POSTFLOP_CBET_PRACTICAL", testNow,
		models.StreetFlop, allTrue(4), 3, 20000)

	v := a.estimateVelocity([]models.TrainingSession{first, last})
	if math.Abs(v.SkillGainRate-50) > 1e-9 {
		t.Errorf("gain rate = %.4f, want 50", v.SkillGainRate)
	}
}

func TestVelocityZeroElapsedTime(t *testing.T) {
	a := newTestAnalyzer(t)

	s1 := makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow,
		models.StreetFlop, []bool{false, false}, 3, 20000)
	s2 := makeSession("s2", "u1", "POSTFLOP_CBET_PRACTICAL", testNow,
		models.StreetFlop, allTrue(2), 3, 20000)

	v := a.estimateVelocity([]models.TrainingSession{s1, s2})
	if v.SkillGainRate != 0 {
		t.Errorf("gain rate with zero elapsed hours = %.4f, want 0", v.SkillGainRate)
	}
}

func TestAdaptabilityPenalizesUnevenScenarios(t *testing.T) {
	a := newTestAnalyzer(t)

	// Perfect on one scenario, hopeless on another: stddev 0.5, so
	// adaptability = max(0, 1 - 0.5*2) = 0.
	uneven := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-2*time.Hour),
			models.StreetFlop, allTrue(10), 3, 20000),
		makeSession("s2", "u1", "POT_ODDS_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetTurn, make([]bool, 10), 3, 20000),
	}
	if got := a.adaptability(uneven); got != 0 {
		t.Errorf("adaptability = %.4f, want 0", got)
	}

	// Identical accuracy across scenarios: full adaptability.
	even := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-2*time.Hour),
			models.StreetFlop, allTrue(10), 3, 20000),
		makeSession("s2", "u1", "POT_ODDS_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetTurn, allTrue(10), 3, 20000),
	}
	if got := a.adaptability(even); got != 1 {
		t.Errorf("adaptability = %.4f, want 1", got)
	}
}

func TestRetentionFloor(t *testing.T) {
	a := newTestAnalyzer(t)

	// Both component scores at zero still floor retention at 0.5.
	sessions := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-2*time.Hour),
			models.StreetFlop, allTrue(10), 3, 20000),
		makeSession("s2", "u1", "POT_ODDS_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetTurn, make([]bool, 10), 3, 20000),
	}

	v := a.estimateVelocity(sessions)
	if v.RetentionRate < 0.5 {
		t.Errorf("retention = %.4f, want >= 0.5", v.RetentionRate)
	}
}
