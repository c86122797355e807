// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package models defines the domain records shared across the profiler,
// recommendation engine, persistence layer, and HTTP API.
package models

import "time"

// Street identifies the betting round a decision belongs to.
type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

// Valid reports whether s is one of the four known streets.
func (s Street) Valid() bool {
	switch s {
	case StreetPreflop, StreetFlop, StreetTurn, StreetRiver:
		return true
	}
	return false
}

// Action is a poker decision recorded for a hand.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionBet   Action = "bet"
	ActionRaise Action = "raise"
)

// Aggressive reports whether the action puts chips in beyond a call.
// Bet and raise are treated equivalently by the mistake classifier.
func (a Action) Aggressive() bool {
	return a == ActionBet || a == ActionRaise
}

// Dimension is one of the six fixed skill categories a profile scores.
type Dimension string

const (
	DimensionPreflop     Dimension = "preflop"
	DimensionPostflop    Dimension = "postflop"
	DimensionPsychology  Dimension = "psychology"
	DimensionMathematics Dimension = "mathematics"
	DimensionBankroll    Dimension = "bankroll"
	DimensionTournament  Dimension = "tournament"
)

// Dimensions lists all skill dimensions in canonical order.
// The order is stable and used for deterministic iteration.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionPreflop,
		DimensionPostflop,
		DimensionPsychology,
		DimensionMathematics,
		DimensionBankroll,
		DimensionTournament,
	}
}

// StyleName identifies a learning-style axis.
type StyleName string

const (
	StyleVisual      StyleName = "visual"
	StylePractical   StyleName = "practical"
	StyleTheoretical StyleName = "theoretical"
	StyleSocial      StyleName = "social"
)

// TrainingHand records a single decision inside a practice session.
type TrainingHand struct {
	// Street is the betting round the decision was made on.
	Street Street `json:"street"`

	// UserAction is what the user did.
	UserAction Action `json:"user_action"`

	// CorrectAction is the objectively correct line for the spot.
	CorrectAction Action `json:"correct_action"`

	// Correct is true when UserAction matched CorrectAction.
	Correct bool `json:"correct"`

	// DecisionTimeMs is how long the user took to act, in milliseconds.
	DecisionTimeMs int64 `json:"decision_time_ms"`

	// Difficulty rates the spot from 1 (trivial) to 5 (expert).
	Difficulty int `json:"difficulty"`

	// PlayedAt is when the hand was played.
	PlayedAt time.Time `json:"played_at"`
}

// Mistake records an incorrect decision with its cost.
type Mistake struct {
	// UserAction is what the user did.
	UserAction Action `json:"user_action"`

	// CorrectAction is what the user should have done.
	CorrectAction Action `json:"correct_action"`

	// EVLoss is the expected-value cost of the mistake in big blinds.
	EVLoss float64 `json:"ev_loss"`

	// Street is where the mistake occurred.
	Street Street `json:"street"`

	// OccurredAt is when the mistake was made.
	OccurredAt time.Time `json:"occurred_at"`
}

// TrainingSession is one completed practice session for a user.
// Sessions are read-only inputs owned by the persistence layer.
type TrainingSession struct {
	// ID uniquely identifies the session.
	ID string `json:"id"`

	// UserID identifies the user who played the session.
	UserID string `json:"user_id"`

	// ScenarioTag names the training scenario the session exercised
	// (e.g. "PREFLOP_3BET_PRACTICAL"). Tags map to skill dimensions
	// through the profiler's relevance tables.
	ScenarioTag string `json:"scenario_tag"`

	// StartedAt is when the session began.
	StartedAt time.Time `json:"started_at"`

	// CompletedAt is when the session ended.
	CompletedAt time.Time `json:"completed_at"`

	// Hands is the ordered list of decisions made during the session.
	Hands []TrainingHand `json:"hands"`

	// Mistakes lists the incorrect decisions with their EV cost.
	Mistakes []Mistake `json:"mistakes"`
}

// Accuracy returns the share of correct decisions, or 0 for an empty session.
func (s *TrainingSession) Accuracy() float64 {
	if len(s.Hands) == 0 {
		return 0
	}
	correct := 0
	for _, h := range s.Hands {
		if h.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(s.Hands))
}

// MeanDecisionTimeMs returns the average decision latency, or 0 for an
// empty session.
func (s *TrainingSession) MeanDecisionTimeMs() float64 {
	if len(s.Hands) == 0 {
		return 0
	}
	var total int64
	for _, h := range s.Hands {
		total += h.DecisionTimeMs
	}
	return float64(total) / float64(len(s.Hands))
}
