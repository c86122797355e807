// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/recommend"
)

// SavePlan stores a generated training plan. Plan IDs are
// deterministic, so regenerating the same plan overwrites the
// existing row rather than accumulating duplicates.
func (db *DB) SavePlan(ctx context.Context, plan *recommend.PersonalizedTrainingPlan) error {
	start := time.Now()
	err := db.savePlan(ctx, plan)
	metrics.RecordDBQuery("upsert", "training_plans", time.Since(start), err)
	return err
}

func (db *DB) savePlan(ctx context.Context, plan *recommend.PersonalizedTrainingPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan %s: %w", plan.PlanID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO training_plans (plan_id, user_id, plan, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (plan_id) DO UPDATE SET
			user_id = excluded.user_id,
			plan = excluded.plan,
			created_at = excluded.created_at`,
		plan.PlanID, plan.UserID, string(payload), plan.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save plan %s: %w", plan.PlanID, err)
	}
	return nil
}

// GetPlan returns a stored training plan by ID, or ErrNotFound when no
// such plan exists.
func (db *DB) GetPlan(ctx context.Context, planID string) (*recommend.PersonalizedTrainingPlan, error) {
	start := time.Now()
	plan, err := db.getPlan(ctx, planID)
	metrics.RecordDBQuery("select", "training_plans", time.Since(start), err)
	return plan, err
}

func (db *DB) getPlan(ctx context.Context, planID string) (*recommend.PersonalizedTrainingPlan, error) {
	var payload string
	err := db.conn.QueryRowContext(ctx,
		`SELECT plan FROM training_plans WHERE plan_id = ?`, planID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan %s: %w", planID, err)
	}

	var plan recommend.PersonalizedTrainingPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", planID, err)
	}
	return &plan, nil
}

// PlansForUser returns all stored plans for a user, newest first.
func (db *DB) PlansForUser(ctx context.Context, userID string) ([]*recommend.PersonalizedTrainingPlan, error) {
	start := time.Now()
	plans, err := db.plansForUser(ctx, userID)
	metrics.RecordDBQuery("select", "training_plans", time.Since(start), err)
	return plans, err
}

func (db *DB) plansForUser(ctx context.Context, userID string) ([]*recommend.PersonalizedTrainingPlan, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT plan FROM training_plans WHERE user_id = ? ORDER BY created_at DESC, plan_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans for user %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	plans := []*recommend.PersonalizedTrainingPlan{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		var plan recommend.PersonalizedTrainingPlan
		if err := json.Unmarshal([]byte(payload), &plan); err != nil {
			return nil, fmt.Errorf("failed to decode plan for user %s: %w", userID, err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan rows: %w", err)
	}
	return plans, nil
}
