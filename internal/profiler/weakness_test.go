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

func mistakeSession(id string, start time.Time, mistakes []models.Mistake) models.TrainingSession {
	return models.TrainingSession{
		ID:          id,
		UserID:      "u1",
		ScenarioTag: "POSTFLOP_CBET_PRACTICAL",
		StartedAt:   start,
		CompletedAt: start.Add(time.Hour),
		Mistakes:    mistakes,
	}
}

func TestClassifyMistake(t *testing.T) {
	a := newTestAnalyzer(t)

	tests := []struct {
		name    string
		mistake models.Mistake
		want    string
	}{
		{
			"folded when call was correct",
			models.Mistake{UserAction: models.ActionFold, CorrectAction: models.ActionCall, Street: models.StreetTurn},
			PatternOverFold,
		},
		{
			"raised when fold was correct",
			models.Mistake{UserAction: models.ActionRaise, CorrectAction: models.ActionFold, Street: models.StreetFlop},
			PatternOverAggression,
		},
		{
			"bet when fold was correct",
			models.Mistake{UserAction: models.ActionBet, CorrectAction: models.ActionFold, Street: models.StreetFlop},
			PatternOverAggression,
		},
		{
			"called when raise was correct",
			models.Mistake{UserAction: models.ActionCall, CorrectAction: models.ActionRaise, Street: models.StreetRiver},
			PatternMissedValue,
		},
		{
			"raised when call was correct",
			models.Mistake{UserAction: models.ActionRaise, CorrectAction: models.ActionCall, Street: models.StreetTurn},
			PatternOversizedBet,
		},
		{
			"expensive mistake outranks street rules",
			models.Mistake{UserAction: models.ActionCheck, CorrectAction: models.ActionBet, EVLoss: 2.5, Street: models.StreetPreflop},
			PatternMajorMisplay,
		},
		{
			"cheap preflop mistake",
			models.Mistake{UserAction: models.ActionCheck, CorrectAction: models.ActionCall, EVLoss: 0.5, Street: models.StreetPreflop},
			PatternPreflopRangeError,
		},
		{
			"cheap river mistake",
			models.Mistake{UserAction: models.ActionCheck, CorrectAction: models.ActionBet, EVLoss: 0.5, Street: models.StreetRiver},
			PatternRiverMisread,
		},
		{
			"anything else is a timing error",
			models.Mistake{UserAction: models.ActionCheck, CorrectAction: models.ActionBet, EVLoss: 0.5, Street: models.StreetTurn},
			PatternTimingError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.classifyMistake(tt.mistake); got != tt.want {
				t.Errorf("classifyMistake() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWeaknessMaterializationThreshold pins the >= 3 occurrence
// boundary: two occurrences never materialize, three always do.
func TestWeaknessMaterializationThreshold(t *testing.T) {
	a := newTestAnalyzer(t)

	overFold := models.Mistake{
		UserAction: models.ActionFold, CorrectAction: models.ActionCall,
		EVLoss: 1.5, Street: models.StreetTurn,
	}
	overAggression := models.Mistake{
		UserAction: models.ActionRaise, CorrectAction: models.ActionFold,
		EVLoss: 1.0, Street: models.StreetFlop,
	}

	sessions := []models.TrainingSession{
		mistakeSession("s1", testNow.Add(-2*time.Hour), []models.Mistake{
			overFold, overFold, overFold, overAggression, overAggression,
		}),
	}

	patterns := a.mineWeaknessPatterns(sessions)

	if len(patterns) != 1 {
		t.Fatalf("patterns = %d, want 1 (only over-fold reaches 3 occurrences)", len(patterns))
	}
	p := patterns[0]
	if p.Pattern != PatternOverFold {
		t.Errorf("pattern = %q, want %q", p.Pattern, PatternOverFold)
	}
	if p.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", p.Occurrences)
	}
	if math.Abs(p.Frequency-3.0/5.0) > 1e-9 {
		t.Errorf("frequency = %.4f, want 0.6", p.Frequency)
	}
	// severity = min(1, meanEV/5) = 1.5/5
	if math.Abs(p.Severity-0.3) > 1e-9 {
		t.Errorf("severity = %.4f, want 0.3", p.Severity)
	}
	if p.Street != models.StreetTurn {
		t.Errorf("street = %q, want turn", p.Street)
	}
	if p.ImprovementSuggestion == "" {
		t.Error("improvement suggestion is empty")
	}
}

func TestWeaknessPatternsSortedWorstFirst(t *testing.T) {
	a := newTestAnalyzer(t)

	mild := models.Mistake{
		UserAction: models.ActionCall, CorrectAction: models.ActionRaise,
		EVLoss: 0.5, Street: models.StreetRiver,
	}
	severe := models.Mistake{
		UserAction: models.ActionFold, CorrectAction: models.ActionCall,
		EVLoss: 4.0, Street: models.StreetTurn,
	}

	sessions := []models.TrainingSession{
		mistakeSession("s1", testNow.Add(-2*time.Hour), []models.Mistake{
			mild, mild, mild, severe, severe, severe,
		}),
	}

	patterns := a.mineWeaknessPatterns(sessions)
	if len(patterns) != 2 {
		t.Fatalf("patterns = %d, want 2", len(patterns))
	}
	if patterns[0].Pattern != PatternOverFold {
		t.Errorf("worst pattern = %q, want %q (higher frequency*severity)",
			patterns[0].Pattern, PatternOverFold)
	}
	for i := 1; i < len(patterns); i++ {
		prev := patterns[i-1].Frequency * patterns[i-1].Severity
		cur := patterns[i].Frequency * patterns[i].Severity
		if cur > prev {
			t.Errorf("patterns not sorted: %f before %f", prev, cur)
		}
	}
}

func TestNoMistakesNoPatterns(t *testing.T) {
	a := newTestAnalyzer(t)

	sessions := []models.TrainingSession{
		makeSession("s1", "u1", "POSTFLOP_CBET_PRACTICAL", testNow.Add(-time.Hour),
			models.StreetFlop, allTrue(10), 3, 15000),
	}

	if patterns := a.mineWeaknessPatterns(sessions); len(patterns) != 0 {
		t.Errorf("patterns = %d, want 0", len(patterns))
	}
}
