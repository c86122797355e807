// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"math"
	"strings"

	"github.com/stackwise/stackwise/internal/models"
)

// inferLearningStyle accumulates heuristic evidence per session and
// normalizes with a soft baseline. This is deliberately not a
// classifier and the four scores do not sum to 1; downstream priority
// multipliers assume this scale.
func (a *Analyzer) inferLearningStyle(sessions []models.TrainingSession) LearningStyle {
	st := a.cfg.Style

	var visual, practical, theoretical, social float64

	for i := range sessions {
		s := &sessions[i]

		if mean := s.MeanDecisionTimeMs(); len(s.Hands) > 0 {
			if mean < st.FastDecisionMs {
				visual++
			} else if mean > st.SlowDecisionMs {
				theoretical++
			}
		}

		// Mistakes in mathematics-relevant sessions signal a player who
		// needs the theory, not more reps.
		if a.relevance.TagRelevant(models.DimensionMathematics, s.ScenarioTag) {
			theoretical += st.MathMistakeWeight * float64(len(s.Mistakes))
		}

		if strings.Contains(s.ScenarioTag, "PRACTICAL") {
			practical++
		}
		if strings.Contains(s.ScenarioTag, "THEORY") {
			theoretical++
		}
	}

	total := visual + practical + theoretical + social + st.BaselineDenominator
	normalize := func(raw float64) float64 {
		return math.Min(1, raw/total+st.Baseline)
	}

	return LearningStyle{
		Visual:      normalize(visual),
		Practical:   normalize(practical),
		Theoretical: normalize(theoretical),
		Social:      normalize(social),
	}
}
