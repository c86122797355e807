// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
)

// GenerateTrainingPlan sequences recommendations into a milestone plan
// covering roughly planDurationDays of training. A plan with zero
// milestones (nothing survived filtering) is a valid outcome.
func (e *Engine) GenerateTrainingPlan(profile *profiler.UserSkillProfile, rctx models.RecommendationContext, planDurationDays int) (*PersonalizedTrainingPlan, error) {
	if planDurationDays <= 0 {
		return nil, fmt.Errorf("%w: plan duration must be positive, got %d days",
			ErrInvalidContext, planDurationDays)
	}

	recs, err := e.GenerateRecommendations(profile, rctx, e.cfg.Plan.CandidateCount)
	if err != nil {
		return nil, err
	}

	e.sequenceForLearning(recs)

	now := e.Now()
	// Plan IDs are stable for a fixed (user, clock) pair so repeated
	// generation over the same snapshot is idempotent.
	planID := uuid.NewSHA1(uuid.NameSpaceOID,
		[]byte(profile.UserID+now.UTC().Format("2006-01-02T15:04:05.000000000"))).String()

	plan := &PersonalizedTrainingPlan{
		UserID:          profile.UserID,
		PlanID:          planID,
		Recommendations: recs,
		Milestones:      e.buildMilestones(planID, recs),
		CreatedAt:       now,
	}

	var totalMinutes int
	var totalImprovement, totalDifficulty float64
	for _, r := range recs {
		totalMinutes += r.EstimatedTime
		totalImprovement += r.ExpectedImprovement
		totalDifficulty += float64(r.Difficulty)
	}
	plan.EstimatedDuration = float64(totalMinutes) / 60
	if len(recs) > 0 {
		plan.ExpectedOverallImprovement = totalImprovement / float64(len(recs))
		plan.Difficulty = int(math.Round(totalDifficulty / float64(len(recs))))
	}

	level := ratingLevel(profile.OverallRating)
	weakest := profile.WeakestDimension()
	plan.Title = fmt.Sprintf("%s training plan: sharpen your %s game", titleCase(level), weakest)
	plan.Description = fmt.Sprintf(
		"A %d-day %s program focused on %s, built from your recent practice history.",
		planDurationDays, level, weakest)

	e.logger.Debug().
		Str("user_id", profile.UserID).
		Str("plan_id", planID).
		Int("recommendations", len(recs)).
		Int("milestones", len(plan.Milestones)).
		Msg("training plan generated")

	return plan, nil
}

// sequenceForLearning reorders recommendations pedagogically: a blended
// score favoring high priority, lower difficulty, and higher payoff,
// then a stable foundations-first override that moves preflop and
// mathematics work to the front.
func (e *Engine) sequenceForLearning(recs []TrainingRecommendation) {
	pc := e.cfg.Plan

	blended := func(r *TrainingRecommendation) float64 {
		return pc.PriorityWeight*r.Priority +
			pc.EaseWeight*(pc.MaxDifficulty-float64(r.Difficulty)) +
			pc.ImprovementWeight*r.ExpectedImprovement
	}
	sort.SliceStable(recs, func(i, j int) bool {
		bi, bj := blended(&recs[i]), blended(&recs[j])
		if bi != bj {
			return bi > bj
		}
		return recs[i].ScenarioID < recs[j].ScenarioID
	})

	// Foundations first: everything else builds on preflop ranges and
	// the underlying math, so those candidates lead regardless of score.
	sort.SliceStable(recs, func(i, j int) bool {
		return isFoundation(&recs[i]) && !isFoundation(&recs[j])
	})
}

func isFoundation(r *TrainingRecommendation) bool {
	return r.FocusesOn(models.DimensionPreflop) || r.FocusesOn(models.DimensionMathematics)
}

// buildMilestones partitions the sequence into fixed-size batches
// forming a linear prerequisite chain.
func (e *Engine) buildMilestones(planID string, recs []TrainingRecommendation) []PlanMilestone {
	size := e.cfg.Plan.MilestoneSize

	var milestones []PlanMilestone
	cumulativeMinutes := 0
	for start := 0; start < len(recs); start += size {
		end := start + size
		if end > len(recs) {
			end = len(recs)
		}
		batch := recs[start:end]

		var improvement float64
		for _, r := range batch {
			cumulativeMinutes += r.EstimatedTime
			improvement += r.ExpectedImprovement
		}

		index := len(milestones)
		m := PlanMilestone{
			ID:                      fmt.Sprintf("%s-m%d", planID, index+1),
			Title:                   fmt.Sprintf("Milestone %d: %s", index+1, batch[0].Title),
			Description:             fmt.Sprintf("Complete %d training scenarios building toward %s.", len(batch), dominantFocus(batch)),
			TargetSkill:             dominantFocus(batch),
			TargetImprovement:       improvement,
			EstimatedTimeToComplete: cumulativeMinutes,
		}
		if index > 0 {
			m.Prerequisites = []string{milestones[index-1].ID}
		}
		milestones = append(milestones, m)
	}
	return milestones
}

// dominantFocus is the most frequent skill-focus tag in a batch; ties
// resolve in canonical dimension order.
func dominantFocus(batch []TrainingRecommendation) models.Dimension {
	counts := make(map[models.Dimension]int)
	for _, r := range batch {
		for _, d := range r.SkillFocus {
			counts[d]++
		}
	}
	best := models.DimensionPreflop
	bestCount := -1
	for _, d := range models.Dimensions() {
		if counts[d] > bestCount {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}

// ratingLevel buckets an overall rating into a player level.
func ratingLevel(rating int) string {
	switch {
	case rating < 800:
		return "beginner"
	case rating < 1200:
		return "intermediate"
	case rating < 1600:
		return "advanced"
	default:
		return "expert"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
