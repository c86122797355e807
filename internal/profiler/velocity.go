// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import (
	"math"

	"github.com/stackwise/stackwise/internal/models"
)

// estimateVelocity derives learning-velocity metrics from the ordered
// session history. Fewer than MinSessions sessions yields the defaults.
func (a *Analyzer) estimateVelocity(sessions []models.TrainingSession) LearningVelocity {
	v := a.cfg.Velocity

	if len(sessions) < v.MinSessions {
		return LearningVelocity{
			SkillGainRate:     v.DefaultGainRate,
			ConsistencyScore:  v.DefaultConsistency,
			AdaptabilityScore: v.DefaultAdaptability,
			RetentionRate:     v.DefaultRetention,
		}
	}

	first := &sessions[0]
	last := &sessions[len(sessions)-1]

	gainRate := 0.0
	if hours := last.StartedAt.Sub(first.StartedAt).Hours(); hours > 0 {
		gainRate = (last.Accuracy() - first.Accuracy()) * v.GainRateScale / hours
	}

	consistency := a.windowedConsistency(pooledHands(sessions))
	adaptability := a.adaptability(sessions)

	retention := math.Max(v.RetentionFloor,
		consistency*v.RetentionConsistencyWeight+adaptability*v.RetentionAdaptabilityWeight)

	return LearningVelocity{
		SkillGainRate:     gainRate,
		ConsistencyScore:  consistency,
		AdaptabilityScore: adaptability,
		RetentionRate:     retention,
	}
}

// adaptability penalizes uneven accuracy across scenarios:
// max(0, 1 - spreadWeight*sqrt(variance of per-scenario accuracy)).
func (a *Analyzer) adaptability(sessions []models.TrainingSession) float64 {
	type scenarioAcc struct {
		correct int
		total   int
	}

	byScenario := make(map[string]*scenarioAcc)
	var order []string
	for i := range sessions {
		s := &sessions[i]
		acc, ok := byScenario[s.ScenarioTag]
		if !ok {
			acc = &scenarioAcc{}
			byScenario[s.ScenarioTag] = acc
			order = append(order, s.ScenarioTag)
		}
		for _, h := range s.Hands {
			acc.total++
			if h.Correct {
				acc.correct++
			}
		}
	}

	accuracies := make([]float64, 0, len(order))
	for _, tag := range order {
		acc := byScenario[tag]
		if acc.total == 0 {
			continue
		}
		accuracies = append(accuracies, float64(acc.correct)/float64(acc.total))
	}
	if len(accuracies) == 0 {
		return a.cfg.Velocity.DefaultAdaptability
	}

	return math.Max(0, 1-stddev(accuracies)*a.cfg.Velocity.AdaptabilitySpreadWeight)
}

func pooledHands(sessions []models.TrainingSession) []models.TrainingHand {
	var hands []models.TrainingHand
	for _, s := range sessions {
		hands = append(hands, s.Hands...)
	}
	return hands
}
