// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestStreetValid(t *testing.T) {
	tests := []struct {
		street Street
		want   bool
	}{
		{StreetPreflop, true},
		{StreetFlop, true},
		{StreetTurn, true},
		{StreetRiver, true},
		{Street(""), false},
		{Street("showdown"), false},
	}
	for _, tt := range tests {
		if got := tt.street.Valid(); got != tt.want {
			t.Errorf("Street(%q).Valid() = %v, want %v", tt.street, got, tt.want)
		}
	}
}

func TestActionAggressive(t *testing.T) {
	aggressive := []Action{ActionBet, ActionRaise}
	passive := []Action{ActionFold, ActionCheck, ActionCall}

	for _, a := range aggressive {
		if !a.Aggressive() {
			t.Errorf("Action(%q).Aggressive() = false, want true", a)
		}
	}
	for _, a := range passive {
		if a.Aggressive() {
			t.Errorf("Action(%q).Aggressive() = true, want false", a)
		}
	}
}

func TestDimensionsOrderStable(t *testing.T) {
	want := []Dimension{
		DimensionPreflop, DimensionPostflop, DimensionPsychology,
		DimensionMathematics, DimensionBankroll, DimensionTournament,
	}
	got := Dimensions()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dimensions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSessionAccuracy(t *testing.T) {
	s := &TrainingSession{
		Hands: []TrainingHand{
			{Correct: true},
			{Correct: false},
			{Correct: true},
			{Correct: true},
		},
	}
	if got := s.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %v, want 0.75", got)
	}

	empty := &TrainingSession{}
	if got := empty.Accuracy(); got != 0 {
		t.Errorf("Accuracy() on empty session = %v, want 0", got)
	}
}

func TestSessionMeanDecisionTime(t *testing.T) {
	s := &TrainingSession{
		Hands: []TrainingHand{
			{DecisionTimeMs: 4000},
			{DecisionTimeMs: 8000},
		},
	}
	if got := s.MeanDecisionTimeMs(); got != 6000 {
		t.Errorf("MeanDecisionTimeMs() = %v, want 6000", got)
	}

	empty := &TrainingSession{}
	if got := empty.MeanDecisionTimeMs(); got != 0 {
		t.Errorf("MeanDecisionTimeMs() on empty session = %v, want 0", got)
	}
}

func TestRewardRoundTrip(t *testing.T) {
	in := Reward{Kind: RewardXP, XP: &XPReward{Amount: 250}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out Reward
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Kind != RewardXP || out.XP == nil || out.XP.Amount != 250 {
		t.Errorf("round trip = %+v", out)
	}
}

func TestRewardUnknownKindPreservesPayload(t *testing.T) {
	payload := []byte(`{"kind":"streak_multiplier","multiplier":2.0}`)

	var r Reward
	if err := json.Unmarshal(payload, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Kind != RewardUnknown {
		t.Errorf("Kind = %q, want unknown", r.Kind)
	}
	if string(r.Raw) != string(payload) {
		t.Errorf("Raw = %s, want original payload preserved", r.Raw)
	}
}
