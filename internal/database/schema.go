// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core tables and indexes. All columns are
// defined in the initial CREATE TABLE statements; there are no
// incremental migrations yet.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS training_sessions (
			id VARCHAR PRIMARY KEY,
			user_id VARCHAR NOT NULL,
			scenario_tag VARCHAR NOT NULL,
			started_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS training_hands (
			session_id VARCHAR NOT NULL,
			hand_index INTEGER NOT NULL,
			street VARCHAR NOT NULL,
			user_action VARCHAR NOT NULL,
			correct_action VARCHAR NOT NULL,
			correct BOOLEAN NOT NULL,
			decision_time_ms BIGINT NOT NULL,
			difficulty INTEGER NOT NULL,
			played_at TIMESTAMP NOT NULL,
			PRIMARY KEY (session_id, hand_index)
		)`,
		`CREATE TABLE IF NOT EXISTS training_mistakes (
			session_id VARCHAR NOT NULL,
			mistake_index INTEGER NOT NULL,
			user_action VARCHAR NOT NULL,
			correct_action VARCHAR NOT NULL,
			ev_loss DOUBLE NOT NULL,
			street VARCHAR NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			PRIMARY KEY (session_id, mistake_index)
		)`,
		`CREATE TABLE IF NOT EXISTS skill_profiles (
			user_id VARCHAR PRIMARY KEY,
			overall_rating INTEGER NOT NULL,
			profile VARCHAR NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS training_plans (
			plan_id VARCHAR PRIMARY KEY,
			user_id VARCHAR NOT NULL,
			plan VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return db.createIndexes(ctx)
}

// createIndexes covers the common query patterns: chronological session
// scans per user and plan lookup per user.
func (db *DB) createIndexes(ctx context.Context) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_started ON training_sessions (user_id, started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_hands_session ON training_hands (session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mistakes_session ON training_mistakes (session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_plans_user_created ON training_plans (user_id, created_at)`,
	}

	for _, q := range indexes {
		if _, err := db.conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
