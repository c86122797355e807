// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package services

import (
	"context"
	"time"

	"github.com/stackwise/stackwise/internal/metrics"
)

// UptimeService refreshes the uptime gauge on a fixed interval.
type UptimeService struct {
	started  time.Time
	interval time.Duration
}

// NewUptimeService creates the uptime ticker. A non-positive interval
// defaults to 15 seconds.
func NewUptimeService(interval time.Duration) *UptimeService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &UptimeService{started: time.Now(), interval: interval}
}

// Serve implements suture.Service.
func (s *UptimeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			metrics.AppUptime.Set(time.Since(s.started).Seconds())
		}
	}
}

func (s *UptimeService) String() string { return "uptime-ticker" }
