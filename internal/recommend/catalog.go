// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package recommend

import (
	"fmt"

	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
)

// Scenario is a named training exercise template.
type Scenario struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	BaseDifficulty int                `json:"base_difficulty"`
	BaseMinutes    int                `json:"base_minutes"`
	SkillFocus     []models.Dimension `json:"skill_focus"`
	Styles         []models.StyleName `json:"styles"`
}

// Catalog holds the immutable scenario and mapping tables the engine
// draws candidates from. Loaded once at startup, passed by reference,
// never mutated at runtime.
type Catalog struct {
	// Scenarios indexes the catalog by scenario ID.
	Scenarios map[string]Scenario

	// scenarioOrder preserves definition order for deterministic
	// iteration.
	scenarioOrder []string

	// WeaknessScenarios maps a weakness pattern name to its candidate
	// scenario IDs, best match first.
	WeaknessScenarios map[string][]string
}

// ScenariosFor returns the scenarios whose skill focus includes the
// dimension, in catalog order.
func (c *Catalog) ScenariosFor(dim models.Dimension) []Scenario {
	var out []Scenario
	for _, id := range c.scenarioOrder {
		sc := c.Scenarios[id]
		for _, d := range sc.SkillFocus {
			if d == dim {
				out = append(out, sc)
				break
			}
		}
	}
	return out
}

// Validate checks referential integrity of the catalog tables.
func (c *Catalog) Validate() error {
	for pattern, ids := range c.WeaknessScenarios {
		if len(ids) == 0 {
			return fmt.Errorf("catalog: weakness %q maps to no scenarios", pattern)
		}
		for _, id := range ids {
			if _, ok := c.Scenarios[id]; !ok {
				return fmt.Errorf("catalog: weakness %q references unknown scenario %q", pattern, id)
			}
		}
	}
	for id, sc := range c.Scenarios {
		if sc.BaseDifficulty < 1 || sc.BaseDifficulty > 5 {
			return fmt.Errorf("catalog: scenario %q base difficulty %d outside 1..5", id, sc.BaseDifficulty)
		}
		if sc.BaseMinutes <= 0 {
			return fmt.Errorf("catalog: scenario %q base minutes must be positive", id)
		}
		if len(sc.SkillFocus) == 0 {
			return fmt.Errorf("catalog: scenario %q has no skill focus", id)
		}
	}
	return nil
}

func newCatalog(scenarios []Scenario, weaknessScenarios map[string][]string) *Catalog {
	c := &Catalog{
		Scenarios:         make(map[string]Scenario, len(scenarios)),
		scenarioOrder:     make([]string, 0, len(scenarios)),
		WeaknessScenarios: weaknessScenarios,
	}
	for _, sc := range scenarios {
		c.Scenarios[sc.ID] = sc
		c.scenarioOrder = append(c.scenarioOrder, sc.ID)
	}
	return c
}

// DefaultCatalog returns the built-in training scenario catalog.
func DefaultCatalog() *Catalog {
	scenarios := []Scenario{
		{
			ID:             "preflop-open-ranges",
			Title:          "Positional Opening Ranges",
			Description:    "Drill raise-first-in ranges for every position until they are automatic.",
			BaseDifficulty: 2,
			BaseMinutes:    20,
			SkillFocus:     []models.Dimension{models.DimensionPreflop},
			Styles:         []models.StyleName{models.StyleVisual, models.StylePractical},
		},
		{
			ID:             "preflop-blind-defense",
			Title:          "Defending the Blinds",
			Description:    "Face a range of open sizes from the blinds and pick the right defense frequency.",
			BaseDifficulty: 3,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionPreflop},
			Styles:         []models.StyleName{models.StylePractical},
		},
		{
			ID:             "preflop-3bet-discipline",
			Title:          "3-Bet Discipline",
			Description:    "Build a balanced 3-bet range on the button against typical opens.",
			BaseDifficulty: 3,
			BaseMinutes:    30,
			SkillFocus:     []models.Dimension{models.DimensionPreflop},
			Styles:         []models.StyleName{models.StyleTheoretical, models.StylePractical},
		},
		{
			ID:             "postflop-value-betting",
			Title:          "Thin Value Betting",
			Description:    "Identify spots where a strong but not nutted hand should bet for value.",
			BaseDifficulty: 4,
			BaseMinutes:    30,
			SkillFocus:     []models.Dimension{models.DimensionPostflop},
			Styles:         []models.StyleName{models.StylePractical},
		},
		{
			ID:             "postflop-pot-control",
			Title:          "Pot Control Lines",
			Description:    "Practice checking back marginal hands to keep pots small in position.",
			BaseDifficulty: 3,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionPostflop},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "postflop-bluff-catching",
			Title:          "Bluff Catching",
			Description:    "Call down correctly against polarized betting on later streets.",
			BaseDifficulty: 4,
			BaseMinutes:    30,
			SkillFocus:     []models.Dimension{models.DimensionPostflop, models.DimensionPsychology},
			Styles:         []models.StyleName{models.StylePractical, models.StyleSocial},
		},
		{
			ID:             "river-value-sizing",
			Title:          "River Value Sizing",
			Description:    "Choose river bet sizes that extract maximum value from worse hands.",
			BaseDifficulty: 4,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionPostflop},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "river-decision-drill",
			Title:          "River Decision Drill",
			Description:    "Rapid-fire river spots: value bet, bluff, or give up.",
			BaseDifficulty: 4,
			BaseMinutes:    20,
			SkillFocus:     []models.Dimension{models.DimensionPostflop},
			Styles:         []models.StyleName{models.StyleVisual, models.StylePractical},
		},
		{
			ID:             "hand-reading-basics",
			Title:          "Hand Reading Fundamentals",
			Description:    "Narrow an opponent's range street by street from their actions.",
			BaseDifficulty: 3,
			BaseMinutes:    35,
			SkillFocus:     []models.Dimension{models.DimensionPostflop, models.DimensionPsychology},
			Styles:         []models.StyleName{models.StyleTheoretical, models.StyleVisual},
		},
		{
			ID:             "bet-sizing-fundamentals",
			Title:          "Bet Sizing Fundamentals",
			Description:    "Learn how pot geometry and board texture dictate bet sizes.",
			BaseDifficulty: 2,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionPostflop, models.DimensionMathematics},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "pot-odds-drill",
			Title:          "Pot Odds Drill",
			Description:    "Compute pot odds and implied odds quickly across common spots.",
			BaseDifficulty: 2,
			BaseMinutes:    15,
			SkillFocus:     []models.Dimension{models.DimensionMathematics},
			Styles:         []models.StyleName{models.StylePractical, models.StyleVisual},
		},
		{
			ID:             "ev-calculation-course",
			Title:          "Expected Value Foundations",
			Description:    "Work through EV calculations for calls, raises, and bluffs.",
			BaseDifficulty: 3,
			BaseMinutes:    40,
			SkillFocus:     []models.Dimension{models.DimensionMathematics},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "tilt-control-program",
			Title:          "Tilt Control Program",
			Description:    "Recognize tilt triggers and build a reset routine between hands.",
			BaseDifficulty: 2,
			BaseMinutes:    30,
			SkillFocus:     []models.Dimension{models.DimensionPsychology},
			Styles:         []models.StyleName{models.StylePractical, models.StyleSocial},
		},
		{
			ID:             "opponent-profiling",
			Title:          "Opponent Profiling",
			Description:    "Classify opponents from sparse observations and exploit the profile.",
			BaseDifficulty: 3,
			BaseMinutes:    30,
			SkillFocus:     []models.Dimension{models.DimensionPsychology},
			Styles:         []models.StyleName{models.StyleSocial, models.StyleVisual},
		},
		{
			ID:             "bankroll-planning",
			Title:          "Bankroll Planning",
			Description:    "Set stake levels and stop-losses that survive downswings.",
			BaseDifficulty: 2,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionBankroll},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "variance-simulator",
			Title:          "Variance Simulator",
			Description:    "Explore how win rate and standard deviation shape bankroll swings.",
			BaseDifficulty: 3,
			BaseMinutes:    20,
			SkillFocus:     []models.Dimension{models.DimensionBankroll, models.DimensionMathematics},
			Styles:         []models.StyleName{models.StyleVisual},
		},
		{
			ID:             "icm-foundations",
			Title:          "ICM Foundations",
			Description:    "Apply the independent chip model to bubble and final-table spots.",
			BaseDifficulty: 4,
			BaseMinutes:    45,
			SkillFocus:     []models.Dimension{models.DimensionTournament, models.DimensionMathematics},
			Styles:         []models.StyleName{models.StyleTheoretical},
		},
		{
			ID:             "push-fold-charts",
			Title:          "Push/Fold Mastery",
			Description:    "Memorize short-stack shove and call ranges by position.",
			BaseDifficulty: 3,
			BaseMinutes:    25,
			SkillFocus:     []models.Dimension{models.DimensionTournament, models.DimensionPreflop},
			Styles:         []models.StyleName{models.StyleVisual, models.StylePractical},
		},
		{
			ID:             "timed-decision-drill",
			Title:          "Timed Decision Drill",
			Description:    "Practice a fixed decision routine under a shot clock.",
			BaseDifficulty: 2,
			BaseMinutes:    15,
			SkillFocus:     []models.Dimension{models.DimensionPsychology},
			Styles:         []models.StyleName{models.StylePractical},
		},
		{
			ID:             "decision-review-drill",
			Title:          "Session Review Workshop",
			Description:    "Replay your highest EV-loss hands and find the better line.",
			BaseDifficulty: 3,
			BaseMinutes:    35,
			SkillFocus:     []models.Dimension{models.DimensionPostflop, models.DimensionMathematics},
			Styles:         []models.StyleName{models.StyleTheoretical, models.StyleSocial},
		},
	}

	weaknessScenarios := map[string][]string{
		profiler.PatternOverFold:          {"preflop-blind-defense", "postflop-bluff-catching"},
		profiler.PatternOverAggression:    {"postflop-pot-control", "preflop-3bet-discipline"},
		profiler.PatternMissedValue:       {"postflop-value-betting", "river-value-sizing"},
		profiler.PatternOversizedBet:      {"bet-sizing-fundamentals", "postflop-pot-control"},
		profiler.PatternMajorMisplay:      {"hand-reading-basics", "decision-review-drill"},
		profiler.PatternPreflopRangeError: {"preflop-open-ranges", "preflop-blind-defense"},
		profiler.PatternRiverMisread:      {"river-decision-drill", "hand-reading-basics"},
		profiler.PatternTimingError:       {"timed-decision-drill"},
	}

	return newCatalog(scenarios, weaknessScenarios)
}
