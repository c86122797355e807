// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package profiler

import "github.com/stackwise/stackwise/internal/models"

// Relevance maps skill dimensions to the scenario tags and streets that
// count toward them. Loaded once at startup and never mutated; the
// analyzer holds it by reference.
type Relevance struct {
	// Tags lists the scenario tags relevant to each dimension.
	Tags map[models.Dimension][]string

	// Streets lists the betting rounds relevant to each dimension.
	Streets map[models.Dimension][]models.Street
}

// DefaultRelevance returns the built-in relevance tables.
func DefaultRelevance() *Relevance {
	allStreets := []models.Street{
		models.StreetPreflop, models.StreetFlop, models.StreetTurn, models.StreetRiver,
	}

	return &Relevance{
		Tags: map[models.Dimension][]string{
			models.DimensionPreflop: {
				"PREFLOP_OPEN_RANGES",
				"PREFLOP_3BET_PRACTICAL",
				"PREFLOP_BLIND_DEFENSE",
				"PREFLOP_RANGES_THEORY",
			},
			models.DimensionPostflop: {
				"POSTFLOP_CBET_PRACTICAL",
				"POSTFLOP_TURN_PLAY",
				"RIVER_VALUE_THEORY",
				"HAND_READING_THEORY",
			},
			models.DimensionPsychology: {
				"TILT_CONTROL_PRACTICAL",
				"TABLE_IMAGE_THEORY",
				"OPPONENT_PROFILING",
			},
			models.DimensionMathematics: {
				"POT_ODDS_PRACTICAL",
				"EV_CALCULATION_THEORY",
				"COMBINATORICS_THEORY",
			},
			models.DimensionBankroll: {
				"BANKROLL_PLANNING",
				"VARIANCE_THEORY",
				"STAKE_SELECTION_PRACTICAL",
			},
			models.DimensionTournament: {
				"ICM_THEORY",
				"TOURNAMENT_PUSH_FOLD_PRACTICAL",
				"FINAL_TABLE_PLAY",
			},
		},
		Streets: map[models.Dimension][]models.Street{
			models.DimensionPreflop:     {models.StreetPreflop},
			models.DimensionPostflop:    {models.StreetFlop, models.StreetTurn, models.StreetRiver},
			models.DimensionPsychology:  allStreets,
			models.DimensionMathematics: allStreets,
			models.DimensionBankroll:    allStreets,
			models.DimensionTournament:  allStreets,
		},
	}
}

// TagRelevant reports whether a scenario tag counts toward a dimension.
func (r *Relevance) TagRelevant(dim models.Dimension, tag string) bool {
	for _, t := range r.Tags[dim] {
		if t == tag {
			return true
		}
	}
	return false
}

// StreetRelevant reports whether a street counts toward a dimension.
func (r *Relevance) StreetRelevant(dim models.Dimension, street models.Street) bool {
	for _, s := range r.Streets[dim] {
		if s == street {
			return true
		}
	}
	return false
}
