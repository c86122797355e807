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
	"github.com/stackwise/stackwise/internal/profiler"
)

// SaveProfile upserts the latest skill profile for a user. The profile
// is stored as a JSON document; overall_rating and updated_at are
// denormalized for querying without decoding.
func (db *DB) SaveProfile(ctx context.Context, profile *profiler.UserSkillProfile) error {
	start := time.Now()
	err := db.saveProfile(ctx, profile)
	metrics.RecordDBQuery("upsert", "skill_profiles", time.Since(start), err)
	return err
}

func (db *DB) saveProfile(ctx context.Context, profile *profiler.UserSkillProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile for user %s: %w", profile.UserID, err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO skill_profiles (user_id, overall_rating, profile, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			overall_rating = excluded.overall_rating,
			profile = excluded.profile,
			updated_at = excluded.updated_at`,
		profile.UserID, profile.OverallRating, string(payload), profile.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to save profile for user %s: %w", profile.UserID, err)
	}
	return nil
}

// GetProfile returns the stored skill profile for a user, or
// ErrNotFound when the user has never been profiled.
func (db *DB) GetProfile(ctx context.Context, userID string) (*profiler.UserSkillProfile, error) {
	start := time.Now()
	profile, err := db.getProfile(ctx, userID)
	metrics.RecordDBQuery("select", "skill_profiles", time.Since(start), err)
	return profile, err
}

func (db *DB) getProfile(ctx context.Context, userID string) (*profiler.UserSkillProfile, error) {
	var payload string
	err := db.conn.QueryRowContext(ctx,
		`SELECT profile FROM skill_profiles WHERE user_id = ?`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile for user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for user %s: %w", userID, err)
	}

	var profile profiler.UserSkillProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile for user %s: %w", userID, err)
	}
	return &profile, nil
}
