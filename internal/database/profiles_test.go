// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
)

func testProfile(userID string, rating int) *profiler.UserSkillProfile {
	updated := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	dims := make(map[models.Dimension]profiler.SkillMetric)
	for _, d := range models.Dimensions() {
		dims[d] = profiler.SkillMetric{
			Current:        float64(rating),
			Trend:          5,
			Confidence:     0.8,
			LastAssessment: updated,
			SampleSize:     120,
		}
	}
	return &profiler.UserSkillProfile{
		UserID:          userID,
		SkillDimensions: dims,
		LearningStyle: profiler.LearningStyle{
			Visual:      0.25,
			Practical:   0.55,
			Theoretical: 0.3,
			Social:      0.25,
		},
		WeaknessPatterns: []profiler.WeaknessPattern{
			{
				Pattern:               profiler.PatternOverFold,
				Frequency:             0.4,
				Severity:              0.5,
				Street:                models.StreetTurn,
				ImprovementSuggestion: "Defend wider against turn barrels",
				Occurrences:           6,
			},
		},
		LearningVelocity: profiler.LearningVelocity{
			SkillGainRate:     12,
			ConsistencyScore:  0.7,
			AdaptabilityScore: 0.6,
			RetentionRate:     0.68,
		},
		OverallRating: rating,
		LastUpdated:   updated,
	}
}

func TestSaveAndGetProfile(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	want := testProfile("user-1", 1150)
	if err := db.SaveProfile(ctx, want); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	got, err := db.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.UserID != "user-1" || got.OverallRating != 1150 {
		t.Errorf("profile = %s/%d, want user-1/1150", got.UserID, got.OverallRating)
	}
	if got.SkillDimensions[models.DimensionPreflop].Current != 1150 {
		t.Errorf("preflop Current = %v", got.SkillDimensions[models.DimensionPreflop].Current)
	}
	if len(got.WeaknessPatterns) != 1 || got.WeaknessPatterns[0].Pattern != profiler.PatternOverFold {
		t.Errorf("weakness patterns = %+v", got.WeaknessPatterns)
	}
	if got.LearningStyle.Practical != 0.55 {
		t.Errorf("Practical = %v, want 0.55", got.LearningStyle.Practical)
	}
	if !got.LastUpdated.Equal(want.LastUpdated) {
		t.Errorf("LastUpdated = %v, want %v", got.LastUpdated, want.LastUpdated)
	}
}

func TestSaveProfileUpserts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SaveProfile(ctx, testProfile("user-1", 1000)); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if err := db.SaveProfile(ctx, testProfile("user-1", 1300)); err != nil {
		t.Fatalf("second SaveProfile() error = %v", err)
	}

	got, err := db.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.OverallRating != 1300 {
		t.Errorf("OverallRating = %d, want 1300 after upsert", got.OverallRating)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetProfile(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrNotFound", err)
	}
}
