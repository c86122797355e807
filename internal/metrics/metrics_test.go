// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/profile", "200"))
	RecordAPIRequest("GET", "/api/v1/profile", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/profile", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("gauge after inc = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("gauge after dec = %v, want %v", got, base)
	}
}

func TestRecordDBQueryError(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "sessions"))
	RecordDBQuery("select", "sessions", time.Millisecond, errors.New("boom"))
	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "sessions"))
	if after != before+1 {
		t.Errorf("error counter = %v, want %v", after, before+1)
	}
}

func TestRecordEventPublish(t *testing.T) {
	okBefore := testutil.ToFloat64(EventsPublished.WithLabelValues("training.profile.updated"))
	RecordEventPublish("training.profile.updated", nil)
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("training.profile.updated")); got != okBefore+1 {
		t.Errorf("publish counter = %v, want %v", got, okBefore+1)
	}

	errBefore := testutil.ToFloat64(EventPublishErrors.WithLabelValues("training.profile.updated"))
	RecordEventPublish("training.profile.updated", errors.New("nats down"))
	if got := testutil.ToFloat64(EventPublishErrors.WithLabelValues("training.profile.updated")); got != errBefore+1 {
		t.Errorf("error counter = %v, want %v", got, errBefore+1)
	}
}
