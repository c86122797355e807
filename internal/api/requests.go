// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/stackwise/stackwise/internal/models"
)

// maxBodyBytes caps request bodies at 1 MiB. Session payloads with a
// few hundred hands stay well under this.
const maxBodyBytes = 1 << 20

// RecommendationsRequest asks for ranked training recommendations.
type RecommendationsRequest struct {
	UserID  string                       `json:"user_id" validate:"required"`
	Context models.RecommendationContext `json:"context"`
	Count   int                          `json:"count,omitempty" validate:"omitempty,min=1"`
}

// PlanRequest asks for a milestone-sequenced training plan.
type PlanRequest struct {
	UserID       string                       `json:"user_id" validate:"required"`
	Context      models.RecommendationContext `json:"context"`
	DurationDays int                          `json:"duration_days" validate:"required,min=1,max=365"`
}

// SubmitSessionRequest ingests a completed training session. The shape
// mirrors models.TrainingSession with validation tags at the boundary.
type SubmitSessionRequest struct {
	ID          string           `json:"id" validate:"required"`
	UserID      string           `json:"user_id" validate:"required"`
	ScenarioTag string           `json:"scenario_tag" validate:"required"`
	StartedAt   time.Time        `json:"started_at" validate:"required"`
	CompletedAt time.Time        `json:"completed_at" validate:"required"`
	Hands       []handPayload    `json:"hands" validate:"omitempty,dive"`
	Mistakes    []mistakePayload `json:"mistakes" validate:"omitempty,dive"`
}

type handPayload struct {
	Street         string    `json:"street" validate:"required,oneof=preflop flop turn river"`
	UserAction     string    `json:"user_action" validate:"required,oneof=fold check call bet raise"`
	CorrectAction  string    `json:"correct_action" validate:"required,oneof=fold check call bet raise"`
	Correct        bool      `json:"correct"`
	DecisionTimeMs int64     `json:"decision_time_ms" validate:"min=0"`
	Difficulty     int       `json:"difficulty" validate:"required,min=1,max=5"`
	PlayedAt       time.Time `json:"played_at" validate:"required"`
}

type mistakePayload struct {
	UserAction    string    `json:"user_action" validate:"required,oneof=fold check call bet raise"`
	CorrectAction string    `json:"correct_action" validate:"required,oneof=fold check call bet raise"`
	EVLoss        float64   `json:"ev_loss" validate:"min=0"`
	Street        string    `json:"street" validate:"required,oneof=preflop flop turn river"`
	OccurredAt    time.Time `json:"occurred_at" validate:"required"`
}

// toModel converts the validated request into the domain session.
func (req *SubmitSessionRequest) toModel() *models.TrainingSession {
	s := &models.TrainingSession{
		ID:          req.ID,
		UserID:      req.UserID,
		ScenarioTag: req.ScenarioTag,
		StartedAt:   req.StartedAt,
		CompletedAt: req.CompletedAt,
	}
	for _, h := range req.Hands {
		s.Hands = append(s.Hands, models.TrainingHand{
			Street:         models.Street(h.Street),
			UserAction:     models.Action(h.UserAction),
			CorrectAction:  models.Action(h.CorrectAction),
			Correct:        h.Correct,
			DecisionTimeMs: h.DecisionTimeMs,
			Difficulty:     h.Difficulty,
			PlayedAt:       h.PlayedAt,
		})
	}
	for _, m := range req.Mistakes {
		s.Mistakes = append(s.Mistakes, models.Mistake{
			UserAction:    models.Action(m.UserAction),
			CorrectAction: models.Action(m.CorrectAction),
			EVLoss:        m.EVLoss,
			Street:        models.Street(m.Street),
			OccurredAt:    m.OccurredAt,
		})
	}
	return s
}

// decodeJSON reads and decodes a request body with a size cap.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("body exceeds %d bytes", maxBodyBytes)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
