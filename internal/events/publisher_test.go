// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

// capturePublisher records published messages in memory.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
	msgs   []*message.Message
	err    error
}

func (c *capturePublisher) Publish(topic string, msgs ...*message.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, m := range msgs {
		c.topics = append(c.topics, topic)
		c.msgs = append(c.msgs, m)
	}
	return nil
}

func (c *capturePublisher) Close() error { return nil }

func newTestPublisher(capture *capturePublisher) *NATSPublisher {
	return &NATSPublisher{
		publisher: capture,
		breaker:   newPublishBreaker(zerolog.Nop()),
		timeout:   time.Second,
		logger:    zerolog.Nop(),
	}
}

func TestProfileUpdatedStampsAndPublishes(t *testing.T) {
	capture := &capturePublisher{}
	p := newTestPublisher(capture)

	event := &ProfileUpdatedEvent{
		UserID:        "user-1",
		OverallRating: 1150,
		SessionCount:  12,
		WeaknessCount: 2,
	}
	if err := p.ProfileUpdated(context.Background(), event); err != nil {
		t.Fatalf("ProfileUpdated() error = %v", err)
	}

	if event.EventID == "" {
		t.Error("EventID not stamped")
	}
	if event.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", event.SchemaVersion, SchemaVersion)
	}
	if event.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}

	if len(capture.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(capture.msgs))
	}
	if capture.topics[0] != TopicProfileUpdated {
		t.Errorf("topic = %q, want %q", capture.topics[0], TopicProfileUpdated)
	}

	msg := capture.msgs[0]
	if msg.UUID != event.EventID {
		t.Errorf("message UUID = %q, want event ID %q", msg.UUID, event.EventID)
	}
	if got := msg.Metadata.Get(natsgo.MsgIdHdr); got != event.EventID {
		t.Errorf("Nats-Msg-Id = %q, want %q", got, event.EventID)
	}
	if got := msg.Metadata.Get("user_id"); got != "user-1" {
		t.Errorf("user_id metadata = %q", got)
	}

	var decoded ProfileUpdatedEvent
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil {
		t.Fatalf("payload decode error = %v", err)
	}
	if decoded.OverallRating != 1150 || decoded.SessionCount != 12 {
		t.Errorf("decoded payload = %+v", decoded)
	}
}

func TestSessionRecordedTopic(t *testing.T) {
	capture := &capturePublisher{}
	p := newTestPublisher(capture)

	err := p.SessionRecorded(context.Background(), &SessionRecordedEvent{
		UserID:    "user-1",
		SessionID: "sess-1",
		HandCount: 40,
	})
	if err != nil {
		t.Fatalf("SessionRecorded() error = %v", err)
	}
	if capture.topics[0] != TopicSessionRecorded {
		t.Errorf("topic = %q, want %q", capture.topics[0], TopicSessionRecorded)
	}
}

func TestPlanCreatedTopic(t *testing.T) {
	capture := &capturePublisher{}
	p := newTestPublisher(capture)

	err := p.PlanCreated(context.Background(), &PlanCreatedEvent{
		UserID:     "user-1",
		PlanID:     "plan-1",
		Milestones: 3,
	})
	if err != nil {
		t.Fatalf("PlanCreated() error = %v", err)
	}
	if capture.topics[0] != TopicPlanCreated {
		t.Errorf("topic = %q, want %q", capture.topics[0], TopicPlanCreated)
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	capture := &capturePublisher{}
	p := newTestPublisher(capture)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	err := p.ProfileUpdated(context.Background(), &ProfileUpdatedEvent{UserID: "user-1"})
	if err == nil {
		t.Fatal("publish after close succeeded, want error")
	}
	if len(capture.msgs) != 0 {
		t.Errorf("published %d messages after close", len(capture.msgs))
	}
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	capture := &capturePublisher{err: errors.New("broker down")}
	p := newTestPublisher(capture)

	for i := 0; i < 5; i++ {
		if err := p.ProfileUpdated(context.Background(), &ProfileUpdatedEvent{UserID: "user-1"}); err == nil {
			t.Fatalf("publish %d succeeded, want error", i)
		}
	}

	// Breaker is open now: publishes fail without reaching the broker.
	err := p.ProfileUpdated(context.Background(), &ProfileUpdatedEvent{UserID: "user-1"})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want gobreaker.ErrOpenState", err)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}

	if err := p.SessionRecorded(context.Background(), &SessionRecordedEvent{}); err != nil {
		t.Errorf("SessionRecorded() error = %v", err)
	}
	if err := p.ProfileUpdated(context.Background(), &ProfileUpdatedEvent{}); err != nil {
		t.Errorf("ProfileUpdated() error = %v", err)
	}
	if err := p.PlanCreated(context.Background(), &PlanCreatedEvent{}); err != nil {
		t.Errorf("PlanCreated() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
