// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.level); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf, Timestamp: true})
	defer Init(DefaultConfig())

	Info().Str("component", "profiler").Msg("profile regenerated")

	out := buf.String()
	if !strings.Contains(out, `"component":"profiler"`) {
		t.Errorf("output missing structured field: %s", out)
	}
	if !strings.Contains(out, `"message":"profile regenerated"`) {
		t.Errorf("output missing message: %s", out)
	}
}

func TestCtxAttachesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Info().Msg("handled")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("output missing request id: %s", buf.String())
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	var buf bytes.Buffer
	override := NewTestLogger(&buf)

	ctx := ContextWithLogger(context.Background(), override)
	stored := LoggerFromContext(ctx)
	stored.Info().Msg("stored")
	if !strings.Contains(buf.String(), "stored") {
		t.Errorf("context logger not used: %s", buf.String())
	}

	// A bare context falls back to the global logger without panicking.
	fallback := LoggerFromContext(context.Background())
	fallback.Debug().Msg("fallback")
}

func TestGenerateRequestIDUnique(t *testing.T) {
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request IDs collide")
	}
}
