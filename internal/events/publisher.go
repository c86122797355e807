// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/stackwise/stackwise/internal/config"
	"github.com/stackwise/stackwise/internal/metrics"
)

// Publisher emits training domain events. The NATS-backed
// implementation is used in production; NopPublisher serves
// deployments that run without a broker.
type Publisher interface {
	SessionRecorded(ctx context.Context, event *SessionRecordedEvent) error
	ProfileUpdated(ctx context.Context, event *ProfileUpdatedEvent) error
	PlanCreated(ctx context.Context, event *PlanCreatedEvent) error
	Close() error
}

// NATSPublisher wraps a Watermill NATS publisher with circuit breaker
// protection. Publishes are idempotent on the consumer side because the
// event ID doubles as the Nats-Msg-Id deduplication header.
type NATSPublisher struct {
	publisher message.Publisher
	breaker   *gobreaker.CircuitBreaker[interface{}]
	timeout   time.Duration
	logger    zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewNATSPublisher connects to NATS and provisions the JetStream
// publisher. The connection retries in the background, so a broker that
// is briefly down at startup does not fail the service.
func NewNATSPublisher(cfg *config.NATSConfig, logger zerolog.Logger) (*NATSPublisher, error) {
	wmLogger := newWatermillLogger(logger)

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	wmConfig := wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			Disabled:      false,
			AutoProvision: true,
			TrackMsgId:    true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}

	pub, err := wmNats.NewPublisher(wmConfig, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	return &NATSPublisher{
		publisher: pub,
		breaker:   newPublishBreaker(logger),
		timeout:   cfg.PublishTimeout,
		logger:    logger,
	}, nil
}

// newPublishBreaker trips after five consecutive failures and probes
// again after thirty seconds. State transitions are exported as a gauge.
func newPublishBreaker(logger zerolog.Logger) *gobreaker.CircuitBreaker[interface{}] {
	settings := gobreaker.Settings{
		Name:        "nats-publish",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
		},
	}
	return gobreaker.NewCircuitBreaker[interface{}](settings)
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// SessionRecorded publishes a session recorded event.
func (p *NATSPublisher) SessionRecorded(ctx context.Context, event *SessionRecordedEvent) error {
	stampSession(event)
	return p.publish(ctx, TopicSessionRecorded, event.EventID, event.UserID, event)
}

// ProfileUpdated publishes a profile updated event.
func (p *NATSPublisher) ProfileUpdated(ctx context.Context, event *ProfileUpdatedEvent) error {
	stampProfile(event)
	return p.publish(ctx, TopicProfileUpdated, event.EventID, event.UserID, event)
}

// PlanCreated publishes a plan created event.
func (p *NATSPublisher) PlanCreated(ctx context.Context, event *PlanCreatedEvent) error {
	stampPlan(event)
	return p.publish(ctx, TopicPlanCreated, event.EventID, event.UserID, event)
}

func stampSession(e *SessionRecordedEvent) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.SchemaVersion == 0 {
		e.SchemaVersion = SchemaVersion
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

func stampProfile(e *ProfileUpdatedEvent) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.SchemaVersion == 0 {
		e.SchemaVersion = SchemaVersion
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

func stampPlan(e *PlanCreatedEvent) {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.SchemaVersion == 0 {
		e.SchemaVersion = SchemaVersion
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

func (p *NATSPublisher) publish(ctx context.Context, topic, eventID, userID string, event interface{}) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.RUnlock()

	data, err := SerializeEvent(event)
	if err != nil {
		metrics.RecordEventPublish(topic, err)
		return err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	msg := message.NewMessage(eventID, data)
	msg.Metadata.Set(natsgo.MsgIdHdr, eventID)
	msg.Metadata.Set("user_id", userID)
	msg.SetContext(ctx)

	_, err = p.breaker.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(topic, msg)
	})
	metrics.RecordEventPublish(topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}

	p.logger.Debug().
		Str("topic", topic).
		Str("event_id", eventID).
		Str("user_id", userID).
		Msg("Event published")
	return nil
}

// Close shuts down the publisher. Further publishes fail fast.
func (p *NATSPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.publisher.Close()
}

// NopPublisher discards all events. Used when NATS is disabled.
type NopPublisher struct{}

func (NopPublisher) SessionRecorded(context.Context, *SessionRecordedEvent) error { return nil }
func (NopPublisher) ProfileUpdated(context.Context, *ProfileUpdatedEvent) error   { return nil }
func (NopPublisher) PlanCreated(context.Context, *PlanCreatedEvent) error         { return nil }
func (NopPublisher) Close() error                                                 { return nil }
