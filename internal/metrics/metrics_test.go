// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPingCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(PingsIngested)
	PingsIngested.Inc()
	if got := testutil.ToFloat64(PingsIngested); got != before+1 {
		t.Errorf("PingsIngested = %v, want %v", got, before+1)
	}

	dropped := PingsDropped.WithLabelValues(DropReasonMalformed)
	beforeDropped := testutil.ToFloat64(dropped)
	dropped.Inc()
	if got := testutil.ToFloat64(dropped); got != beforeDropped+1 {
		t.Errorf("PingsDropped = %v, want %v", got, beforeDropped+1)
	}
}

func TestObserveDBQueryCountsErrors(t *testing.T) {
	errCounter := DBQueryErrors.WithLabelValues("insert", "locations")
	before := testutil.ToFloat64(errCounter)

	ObserveDBQuery("insert", "locations", time.Now(), nil)
	if got := testutil.ToFloat64(errCounter); got != before {
		t.Errorf("error counter moved on success: %v", got)
	}

	ObserveDBQuery("insert", "locations", time.Now(), errors.New("boom"))
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("error counter = %v, want %v", got, before+1)
	}
}

func TestObserveAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/users", "200")
	before := testutil.ToFloat64(counter)
	ObserveAPIRequest("GET", "/api/v1/users", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("APIRequestsTotal = %v, want %v", got, before+1)
	}
}
