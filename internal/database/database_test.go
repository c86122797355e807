// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"context"
	"testing"
	"time"

	"github.com/stackwise/stackwise/internal/config"
	"github.com/stackwise/stackwise/internal/models"
)

// testDBSemaphore serializes DuckDB creation. Concurrent CGO calls from
// parallel tests can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   2,
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

// testSession builds a session with two hands and one mistake.
func testSession(id, userID string, start time.Time) *models.TrainingSession {
	return &models.TrainingSession{
		ID:          id,
		UserID:      userID,
		ScenarioTag: "PREFLOP_3BET_PRACTICAL",
		StartedAt:   start,
		CompletedAt: start.Add(30 * time.Minute),
		Hands: []models.TrainingHand{
			{
				Street:         models.StreetPreflop,
				UserAction:     models.ActionRaise,
				CorrectAction:  models.ActionRaise,
				Correct:        true,
				DecisionTimeMs: 4200,
				Difficulty:     3,
				PlayedAt:       start.Add(time.Minute),
			},
			{
				Street:         models.StreetPreflop,
				UserAction:     models.ActionFold,
				CorrectAction:  models.ActionCall,
				Correct:        false,
				DecisionTimeMs: 9800,
				Difficulty:     4,
				PlayedAt:       start.Add(2 * time.Minute),
			},
		},
		Mistakes: []models.Mistake{
			{
				UserAction:    models.ActionFold,
				CorrectAction: models.ActionCall,
				EVLoss:        2.5,
				Street:        models.StreetPreflop,
				OccurredAt:    start.Add(2 * time.Minute),
			},
		},
	}
}

func TestNewCreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	// Empty tables must be queryable immediately after New.
	count, err := db.SessionCount(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("SessionCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("SessionCount() = %d, want 0", count)
	}
}

func TestInsertAndFetchSessions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	// Insert out of chronological order to verify ordering on read.
	later := testSession("sess-2", "user-1", base.Add(24*time.Hour))
	earlier := testSession("sess-1", "user-1", base)
	other := testSession("sess-3", "user-2", base)

	for _, s := range []*models.TrainingSession{later, earlier, other} {
		if err := db.InsertSession(ctx, s); err != nil {
			t.Fatalf("InsertSession(%s) error = %v", s.ID, err)
		}
	}

	sessions, err := db.SessionsForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("SessionsForUser() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("SessionsForUser() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != "sess-1" || sessions[1].ID != "sess-2" {
		t.Errorf("sessions out of order: got %s, %s", sessions[0].ID, sessions[1].ID)
	}

	got := sessions[0]
	if got.ScenarioTag != "PREFLOP_3BET_PRACTICAL" {
		t.Errorf("ScenarioTag = %q", got.ScenarioTag)
	}
	if !got.StartedAt.Equal(base) {
		t.Errorf("StartedAt = %v, want %v", got.StartedAt, base)
	}
	if len(got.Hands) != 2 {
		t.Fatalf("len(Hands) = %d, want 2", len(got.Hands))
	}
	if got.Hands[0].UserAction != models.ActionRaise || !got.Hands[0].Correct {
		t.Errorf("first hand = %+v", got.Hands[0])
	}
	if got.Hands[1].DecisionTimeMs != 9800 || got.Hands[1].Difficulty != 4 {
		t.Errorf("second hand = %+v", got.Hands[1])
	}
	if len(got.Mistakes) != 1 {
		t.Fatalf("len(Mistakes) = %d, want 1", len(got.Mistakes))
	}
	if got.Mistakes[0].EVLoss != 2.5 || got.Mistakes[0].Street != models.StreetPreflop {
		t.Errorf("mistake = %+v", got.Mistakes[0])
	}
}

func TestInsertSessionIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := testSession("sess-dup", "user-1", time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC))
	if err := db.InsertSession(ctx, s); err != nil {
		t.Fatalf("first InsertSession() error = %v", err)
	}
	if err := db.InsertSession(ctx, s); err != nil {
		t.Fatalf("second InsertSession() error = %v", err)
	}

	count, err := db.SessionCount(ctx, "user-1")
	if err != nil {
		t.Fatalf("SessionCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("SessionCount() = %d, want 1", count)
	}

	sessions, err := db.SessionsForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("SessionsForUser() error = %v", err)
	}
	if len(sessions[0].Hands) != 2 {
		t.Errorf("hands duplicated: len = %d, want 2", len(sessions[0].Hands))
	}
	if len(sessions[0].Mistakes) != 1 {
		t.Errorf("mistakes duplicated: len = %d, want 1", len(sessions[0].Mistakes))
	}
}

func TestSessionsForUserEmpty(t *testing.T) {
	db := setupTestDB(t)

	sessions, err := db.SessionsForUser(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("SessionsForUser() error = %v", err)
	}
	if sessions == nil {
		t.Fatal("SessionsForUser() returned nil, want empty slice")
	}
	if len(sessions) != 0 {
		t.Errorf("len = %d, want 0", len(sessions))
	}
}
