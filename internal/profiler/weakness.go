// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"math"
	"sort"

	"github.com/stackwise/stackwise/internal/models"
)

// Canonical weakness pattern names. The classifier rules are evaluated
// in exactly this priority order.
const (
	PatternOverFold          = "over-fold"
	PatternOverAggression    = "over-aggression"
	PatternMissedValue       = "missed value"
	PatternOversizedBet      = "oversized bet"
	PatternMajorMisplay      = "major misplay"
	PatternPreflopRangeError = "preflop range error"
	PatternRiverMisread      = "river misread"
	PatternTimingError       = "timing error"
)

// classifyMistake assigns a mistake to a named pattern using the
// deterministic priority-ordered rule table.
func (a *Analyzer) classifyMistake(m models.Mistake) string {
	switch {
	case m.UserAction == models.ActionFold && m.CorrectAction != models.ActionFold:
		return PatternOverFold
	case m.UserAction.Aggressive() && m.CorrectAction == models.ActionFold:
		return PatternOverAggression
	case m.UserAction == models.ActionCall && m.CorrectAction == models.ActionRaise:
		return PatternMissedValue
	case m.UserAction.Aggressive() && m.CorrectAction == models.ActionCall:
		return PatternOversizedBet
	case m.EVLoss > a.cfg.Weakness.MajorMisplayEVLoss:
		return PatternMajorMisplay
	case m.Street == models.StreetPreflop:
		return PatternPreflopRangeError
	case m.Street == models.StreetRiver:
		return PatternRiverMisread
	default:
		return PatternTimingError
	}
}

// patternAggregate accumulates one pattern's occurrences during mining.
type patternAggregate struct {
	count       int
	totalEVLoss float64
	streets     map[models.Street]int
	firstStreet models.Street
}

// mineWeaknessPatterns classifies every mistake across the history and
// materializes patterns that recur at least MinOccurrences times,
// ordered worst-first by frequency*severity.
func (a *Analyzer) mineWeaknessPatterns(sessions []models.TrainingSession) []WeaknessPattern {
	aggregates := make(map[string]*patternAggregate)
	totalMistakes := 0

	for _, s := range sessions {
		for _, m := range s.Mistakes {
			totalMistakes++
			name := a.classifyMistake(m)
			agg, ok := aggregates[name]
			if !ok {
				agg = &patternAggregate{
					streets:     make(map[models.Street]int),
					firstStreet: m.Street,
				}
				aggregates[name] = agg
			}
			agg.count++
			agg.totalEVLoss += m.EVLoss
			agg.streets[m.Street]++
		}
	}

	if totalMistakes == 0 {
		return nil
	}

	var patterns []WeaknessPattern
	for name, agg := range aggregates {
		if agg.count < a.cfg.Weakness.MinOccurrences {
			continue
		}
		meanEVLoss := agg.totalEVLoss / float64(agg.count)
		street := dominantStreet(agg)
		patterns = append(patterns, WeaknessPattern{
			Pattern:               name,
			Frequency:             float64(agg.count) / float64(totalMistakes),
			Severity:              math.Min(1, meanEVLoss/a.cfg.Weakness.SeverityEVScale),
			Street:                street,
			ImprovementSuggestion: improvementSuggestion(name, street),
			Occurrences:           agg.count,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		wi := patterns[i].Frequency * patterns[i].Severity
		wj := patterns[j].Frequency * patterns[j].Severity
		if wi != wj {
			return wi > wj
		}
		// Stable tie-break so equal-weight patterns order deterministically.
		return patterns[i].Pattern < patterns[j].Pattern
	})

	return patterns
}

// dominantStreet is the most frequent street among a pattern's
// occurrences; ties resolve in street order.
func dominantStreet(agg *patternAggregate) models.Street {
	best := agg.firstStreet
	bestCount := 0
	for _, s := range []models.Street{
		models.StreetPreflop, models.StreetFlop, models.StreetTurn, models.StreetRiver,
	} {
		if c := agg.streets[s]; c > bestCount {
			best = s
			bestCount = c
		}
	}
	return best
}

// suggestionTable maps (pattern, street) to coaching copy. Patterns
// without a street-specific entry fall back to the general suggestion.
var suggestionTable = map[string]map[models.Street]string{
	PatternOverFold: {
		models.StreetPreflop: "Widen your defending ranges from the blinds; you are surrendering too much equity preflop.",
		models.StreetRiver:   "Review river bluff-catching spots; your calling range is too tight against polarized bets.",
	},
	PatternOverAggression: {
		models.StreetPreflop: "Tighten your 3-bet range; many of these hands should be folded before the flop.",
		models.StreetTurn:    "Slow down on turns that improve your opponent's range; check-calling keeps their bluffs in.",
	},
	PatternMissedValue: {
		models.StreetRiver: "Raise your strong hands on the river; flat-calling leaves value on the table.",
	},
	PatternOversizedBet: {
		models.StreetFlop: "Size down on dry flops; a smaller bet achieves the same fold equity at lower cost.",
	},
	PatternPreflopRangeError: {
		models.StreetPreflop: "Drill positional opening ranges until they are automatic.",
	},
	PatternRiverMisread: {
		models.StreetRiver: "Practice counting combinations on the river before acting.",
	},
}

// generalSuggestions is the per-pattern fallback copy.
var generalSuggestions = map[string]string{
	PatternOverFold:          "Work on recognizing spots where folding forfeits too much equity.",
	PatternOverAggression:    "Review hands where aggression was punished; pick calmer lines in marginal spots.",
	PatternMissedValue:       "Identify value-betting opportunities you are passing up with strong holdings.",
	PatternOversizedBet:      "Study bet sizing relative to pot and board texture.",
	PatternMajorMisplay:      "Review these high-cost hands individually; each one is worth a full replay.",
	PatternPreflopRangeError: "Rebuild your preflop ranges position by position.",
	PatternRiverMisread:      "Slow down on rivers and re-read the board before committing chips.",
	PatternTimingError:       "Use a consistent decision routine to avoid rushed or stalled choices.",
}

func improvementSuggestion(pattern string, street models.Street) string {
	if byStreet, ok := suggestionTable[pattern]; ok {
		if s, ok := byStreet[street]; ok {
			return s
		}
	}
	return generalSuggestions[pattern]
}
