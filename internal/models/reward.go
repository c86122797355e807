// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// RewardKind tags the payload shape of a milestone reward.
type RewardKind string

const (
	RewardXP             RewardKind = "xp"
	RewardBadge          RewardKind = "badge"
	RewardScenarioUnlock RewardKind = "scenario_unlock"
	// RewardUnknown is the fallback for payloads produced by newer
	// gamification services this build does not know about. The raw
	// payload is preserved so it round-trips unmodified.
	RewardUnknown RewardKind = "unknown"
)

// Reward is a tagged union over the known gamification reward payloads.
// Exactly one of the typed payload fields is set, matching Kind.
type Reward struct {
	Kind RewardKind `json:"kind"`

	XP             *XPReward             `json:"xp,omitempty"`
	Badge          *BadgeReward          `json:"badge,omitempty"`
	ScenarioUnlock *ScenarioUnlockReward `json:"scenario_unlock,omitempty"`

	// Raw holds the original payload for unknown kinds.
	Raw json.RawMessage `json:"raw,omitempty"`
}

// XPReward grants experience points.
type XPReward struct {
	Amount int `json:"amount"`
}

// BadgeReward grants a named badge.
type BadgeReward struct {
	BadgeID string `json:"badge_id"`
	Title   string `json:"title"`
}

// ScenarioUnlockReward unlocks a training scenario.
type ScenarioUnlockReward struct {
	ScenarioID string `json:"scenario_id"`
}

// rewardEnvelope mirrors the wire shape for decoding.
type rewardEnvelope struct {
	Kind           RewardKind            `json:"kind"`
	XP             *XPReward             `json:"xp,omitempty"`
	Badge          *BadgeReward          `json:"badge,omitempty"`
	ScenarioUnlock *ScenarioUnlockReward `json:"scenario_unlock,omitempty"`
	Raw            json.RawMessage       `json:"raw,omitempty"`
}

// UnmarshalJSON decodes a reward, downgrading unrecognized kinds to
// RewardUnknown instead of failing.
func (r *Reward) UnmarshalJSON(data []byte) error {
	var env rewardEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode reward: %w", err)
	}

	switch env.Kind {
	case RewardXP, RewardBadge, RewardScenarioUnlock:
		*r = Reward{
			Kind:           env.Kind,
			XP:             env.XP,
			Badge:          env.Badge,
			ScenarioUnlock: env.ScenarioUnlock,
		}
	default:
		*r = Reward{Kind: RewardUnknown, Raw: append(json.RawMessage(nil), data...)}
	}
	return nil
}
