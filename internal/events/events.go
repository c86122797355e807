// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package events publishes training domain events to NATS JetStream.
// Downstream consumers (coaching UI, notification service) subscribe to
// react to profile changes without polling the API.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// SchemaVersion is the current event schema version. Increment on
// breaking changes to an event payload.
const SchemaVersion = 1

// Topics for training domain events.
const (
	TopicSessionRecorded = "training.session.recorded"
	TopicProfileUpdated  = "training.profile.updated"
	TopicPlanCreated     = "training.plan.created"
)

// SessionRecordedEvent is emitted after a training session is persisted.
type SessionRecordedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	SessionID     string    `json:"session_id"`
	ScenarioTag   string    `json:"scenario_tag"`
	HandCount     int       `json:"hand_count"`
	MistakeCount  int       `json:"mistake_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// ProfileUpdatedEvent is emitted after a skill profile is regenerated.
type ProfileUpdatedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	OverallRating int       `json:"overall_rating"`
	SessionCount  int       `json:"session_count"`
	WeaknessCount int       `json:"weakness_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// PlanCreatedEvent is emitted after a training plan is generated.
type PlanCreatedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	EventID       string    `json:"event_id"`
	UserID        string    `json:"user_id"`
	PlanID        string    `json:"plan_id"`
	Milestones    int       `json:"milestones"`
	Timestamp     time.Time `json:"timestamp"`
}

// SerializeEvent encodes an event payload as JSON.
func SerializeEvent(event interface{}) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("serialize event: %w", err)
	}
	return data, nil
}
