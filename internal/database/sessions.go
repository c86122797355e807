// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/models"
)

// InsertSession stores a completed training session with its hands and
// mistakes in a single transaction.
//
// Inserts are idempotent: ON CONFLICT DO NOTHING on the session row
// means replaying the same session after a restart or an event redelivery
// is silently ignored, and the hands and mistakes of a duplicate are
// never written twice.
func (db *DB) InsertSession(ctx context.Context, session *models.TrainingSession) error {
	start := time.Now()
	err := db.insertSession(ctx, session)
	metrics.RecordDBQuery("insert", "training_sessions", time.Since(start), err)
	return err
}

func (db *DB) insertSession(ctx context.Context, session *models.TrainingSession) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO training_sessions (id, user_id, scenario_tag, started_at, completed_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		session.ID, session.UserID, session.ScenarioTag,
		session.StartedAt, session.CompletedAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", session.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		logging.Debug().
			Str("session_id", session.ID).
			Str("user_id", session.UserID).
			Msg("Duplicate session ignored")
		return nil
	}

	for i, h := range session.Hands {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO training_hands (session_id, hand_index, street, user_action, correct_action, correct, decision_time_ms, difficulty, played_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, i, string(h.Street), string(h.UserAction), string(h.CorrectAction),
			h.Correct, h.DecisionTimeMs, h.Difficulty, h.PlayedAt); err != nil {
			return fmt.Errorf("failed to insert hand %d of session %s: %w", i, session.ID, err)
		}
	}

	for i, m := range session.Mistakes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO training_mistakes (session_id, mistake_index, user_action, correct_action, ev_loss, street, occurred_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			session.ID, i, string(m.UserAction), string(m.CorrectAction),
			m.EVLoss, string(m.Street), m.OccurredAt); err != nil {
			return fmt.Errorf("failed to insert mistake %d of session %s: %w", i, session.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session %s: %w", session.ID, err)
	}
	return nil
}

// SessionsForUser returns all sessions for a user in chronological
// order, with hands and mistakes attached in their recorded order.
// A user with no sessions yields an empty slice, not an error.
func (db *DB) SessionsForUser(ctx context.Context, userID string) ([]*models.TrainingSession, error) {
	start := time.Now()
	sessions, err := db.sessionsForUser(ctx, userID)
	metrics.RecordDBQuery("select", "training_sessions", time.Since(start), err)
	return sessions, err
}

func (db *DB) sessionsForUser(ctx context.Context, userID string) ([]*models.TrainingSession, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, scenario_tag, started_at, completed_at
		 FROM training_sessions
		 WHERE user_id = ?
		 ORDER BY started_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for user %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	var sessions []*models.TrainingSession
	index := make(map[string]*models.TrainingSession)
	for rows.Next() {
		s := &models.TrainingSession{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.ScenarioTag, &s.StartedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, s)
		index[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}
	if len(sessions) == 0 {
		return []*models.TrainingSession{}, nil
	}

	if err := db.attachHands(ctx, userID, index); err != nil {
		return nil, err
	}
	if err := db.attachMistakes(ctx, userID, index); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (db *DB) attachHands(ctx context.Context, userID string, index map[string]*models.TrainingSession) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT h.session_id, h.street, h.user_action, h.correct_action, h.correct, h.decision_time_ms, h.difficulty, h.played_at
		 FROM training_hands h
		 JOIN training_sessions s ON s.id = h.session_id
		 WHERE s.user_id = ?
		 ORDER BY h.session_id, h.hand_index`, userID)
	if err != nil {
		return fmt.Errorf("failed to query hands for user %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var sessionID, street, userAction, correctAction string
		var h models.TrainingHand
		if err := rows.Scan(&sessionID, &street, &userAction, &correctAction,
			&h.Correct, &h.DecisionTimeMs, &h.Difficulty, &h.PlayedAt); err != nil {
			return fmt.Errorf("failed to scan hand row: %w", err)
		}
		h.Street = models.Street(street)
		h.UserAction = models.Action(userAction)
		h.CorrectAction = models.Action(correctAction)
		if s, ok := index[sessionID]; ok {
			s.Hands = append(s.Hands, h)
		}
	}
	return rows.Err()
}

func (db *DB) attachMistakes(ctx context.Context, userID string, index map[string]*models.TrainingSession) error {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT m.session_id, m.user_action, m.correct_action, m.ev_loss, m.street, m.occurred_at
		 FROM training_mistakes m
		 JOIN training_sessions s ON s.id = m.session_id
		 WHERE s.user_id = ?
		 ORDER BY m.session_id, m.mistake_index`, userID)
	if err != nil {
		return fmt.Errorf("failed to query mistakes for user %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var sessionID, userAction, correctAction, street string
		var m models.Mistake
		if err := rows.Scan(&sessionID, &userAction, &correctAction, &m.EVLoss, &street, &m.OccurredAt); err != nil {
			return fmt.Errorf("failed to scan mistake row: %w", err)
		}
		m.UserAction = models.Action(userAction)
		m.CorrectAction = models.Action(correctAction)
		m.Street = models.Street(street)
		if s, ok := index[sessionID]; ok {
			s.Mistakes = append(s.Mistakes, m)
		}
	}
	return rows.Err()
}

// SessionCount returns the number of stored sessions for a user.
func (db *DB) SessionCount(ctx context.Context, userID string) (int, error) {
	start := time.Now()
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM training_sessions WHERE user_id = ?`, userID).Scan(&count)
	metrics.RecordDBQuery("count", "training_sessions", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions for user %s: %w", userID, err)
	}
	return count, nil
}
