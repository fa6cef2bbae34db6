// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package models defines the data structures shared across FamTrack:
// location events, tracked users, safe zones, and the API response envelope.
package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationEvent is one observed position report for a tracked user.
//
// Events are immutable once written: the store only appends and, on explicit
// request, bulk-deletes all rows for a user. Timestamp is assigned by the
// server at ingestion time; client-supplied time is never trusted.
type LocationEvent struct {
	ID     uuid.UUID `json:"id"`
	UserID string    `json:"userId"`
	Lat    float64   `json:"lat"`
	Lng    float64   `json:"lng"`
	// Speed is the reported speed in km/h; zero means absent.
	Speed float64 `json:"speed,omitempty"`
	// Accuracy is positional uncertainty in meters, passed through unvalidated.
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationUpdate is the normalized live-position payload fanned out to every
// connected session after a ping is persisted.
type LocationUpdate struct {
	UserID string  `json:"userId"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Speed  float64 `json:"speed"`
}

// SpeedAlert is delivered to the originating session only when a reported
// speed exceeds the configured threshold.
type SpeedAlert struct {
	UserID  string  `json:"userId"`
	Speed   float64 `json:"speed"`
	Message string  `json:"message"`
}

// LatestPosition is a derived record: a user's maximum-timestamp event joined
// with their display name and email. Users with zero events are omitted
// entirely rather than represented with a null position.
type LatestPosition struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Lat       float64   `json:"lastLat"`
	Lng       float64   `json:"lastLng"`
	Speed     float64   `json:"speed"`
	Timestamp time.Time `json:"timestamp"`
}
