// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package models

import (
	"time"

	"github.com/google/uuid"
)

// SafeZone is a labeled circle owned by a parent account, e.g. "Home" or
// "School". It is a plain stored record: FamTrack does not evaluate geofence
// containment against it.
type SafeZone struct {
	ID       uuid.UUID `json:"id"`
	ParentID string    `json:"parentId"`
	Name     string    `json:"name"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	// Radius is in meters.
	Radius    float64   `json:"radius"`
	CreatedAt time.Time `json:"createdAt"`
}

// SafeZoneRequest is the request body for POST /safezones. Unlike pings,
// this human-entered surface does bounds-check coordinates.
type SafeZoneRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=120"`
	Lat    float64 `json:"lat" validate:"min=-90,max=90"`
	Lng    float64 `json:"lng" validate:"min=-180,max=180"`
	Radius float64 `json:"radius" validate:"required,gt=0,max=100000"`
}
