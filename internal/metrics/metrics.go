// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package metrics provides Prometheus instrumentation for the location
// pipeline, WebSocket fan-out, database queries, and API endpoints.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons for famtrack_pings_dropped_total.
const (
	DropReasonMalformed = "malformed"
	DropReasonStorage   = "storage"
	DropReasonThrottled = "throttled"
)

var (
	// Ingestion pipeline metrics
	PingsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "famtrack_pings_ingested_total",
			Help: "Total number of location pings persisted",
		},
	)

	PingsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtrack_pings_dropped_total",
			Help: "Total number of location pings dropped",
		},
		[]string{"reason"}, // "malformed", "storage", "throttled"
	)

	SpeedAlerts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "famtrack_speed_alerts_total",
			Help: "Total number of speed alerts emitted",
		},
	)

	// WebSocket metrics
	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "famtrack_websocket_clients",
			Help: "Current number of connected WebSocket sessions",
		},
	)

	WSBroadcastsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtrack_websocket_drops_total",
			Help: "Total number of messages dropped in the fan-out path",
		},
		[]string{"cause"}, // "channel_full", "slow_consumer"
	)

	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "famtrack_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtrack_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "famtrack_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "famtrack_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveDBQuery records a query duration and, when err is non-nil, an error.
func ObserveDBQuery(operation, table string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// ObserveAPIRequest records one completed HTTP request.
func ObserveAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
