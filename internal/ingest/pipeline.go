// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package ingest validates and persists location pings arriving over
// the realtime transport.
//
// The pipeline is deliberately side-effect free with respect to the
// transport: HandlePing appends to the store and returns an Outcome
// describing what the caller should broadcast. The websocket layer
// owns fan-out; this package owns validation, server-side
// timestamping, and the speed check.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	json "github.com/goccy/go-json"

	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/metrics"
	"github.com/tomtom215/famtrack/internal/models"
)

// ErrMalformedPing marks a ping that failed validation. Malformed
// pings are dropped silently: no storage write, no broadcast, no
// feedback to the sender.
var ErrMalformedPing = errors.New("malformed location ping")

// ErrStorage marks a ping that validated but could not be persisted.
// Delivery is at-most-once, so the ping is dropped without retry.
var ErrStorage = errors.New("location ping storage failed")

// Store is the persistence surface the pipeline needs. *database.DB
// satisfies it.
type Store interface {
	InsertLocationEvent(ctx context.Context, event *models.LocationEvent) error
}

// Ping is the wire payload of a send-location message. Lat and Lng are
// pointers so that absent fields are distinguishable from zero and can
// be rejected.
type Ping struct {
	UserID   string   `json:"userId"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Speed    float64  `json:"speed"`
	Accuracy float64  `json:"accuracy"`
}

// Outcome describes the broadcast effects of an accepted ping. Update
// is always set for an accepted ping; Alert is set only when the
// reported speed exceeded the threshold and is delivered to the
// originating session alone.
type Outcome struct {
	Event  *models.LocationEvent
	Update *models.LocationUpdate
	Alert  *models.SpeedAlert
}

// Pipeline turns raw send-location payloads into stored events and
// broadcast effects.
type Pipeline struct {
	store        Store
	thresholdKmh float64
	now          func() time.Time
}

// NewPipeline creates a pipeline backed by the given store, using the
// speed threshold from cfg.
func NewPipeline(store Store, cfg *config.TrackingConfig) *Pipeline {
	return &Pipeline{
		store:        store,
		thresholdKmh: cfg.SpeedThresholdKmh,
		now:          time.Now,
	}
}

// HandlePing decodes, validates, timestamps, and stores a raw
// send-location payload. The sender's userID is taken from the
// authenticated session, never from the payload.
func (p *Pipeline) HandlePing(ctx context.Context, userID string, raw []byte) (Outcome, error) {
	ping, err := decodePing(raw)
	if err != nil {
		metrics.PingsDropped.WithLabelValues(metrics.DropReasonMalformed).Inc()
		logging.Debug().Err(err).Str("user_id", userID).Msg("Dropping malformed location ping")
		return Outcome{}, err
	}

	event := &models.LocationEvent{
		UserID:   userID,
		Lat:      *ping.Lat,
		Lng:      *ping.Lng,
		Speed:    ping.Speed,
		Accuracy: ping.Accuracy,
		// Device clocks drift; the server clock is the only ordering
		// authority.
		Timestamp: p.now(),
	}

	if err := p.store.InsertLocationEvent(ctx, event); err != nil {
		if errors.Is(err, database.ErrInvalidCoordinates) {
			metrics.PingsDropped.WithLabelValues(metrics.DropReasonMalformed).Inc()
			return Outcome{}, fmt.Errorf("%w: %w", ErrMalformedPing, err)
		}
		metrics.PingsDropped.WithLabelValues(metrics.DropReasonStorage).Inc()
		logging.Error().Err(err).Str("user_id", userID).Msg("Failed to store location ping")
		return Outcome{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	metrics.PingsIngested.Inc()

	outcome := Outcome{
		Event: event,
		Update: &models.LocationUpdate{
			UserID: userID,
			Lat:    event.Lat,
			Lng:    event.Lng,
			Speed:  event.Speed,
		},
	}

	if EvaluateSpeed(event.Speed, p.thresholdKmh) == VerdictExceeded {
		metrics.SpeedAlerts.Inc()
		outcome.Alert = &models.SpeedAlert{
			UserID:  userID,
			Speed:   event.Speed,
			Message: fmt.Sprintf("Speed %.0f km/h exceeds the limit of %.0f km/h", event.Speed, p.thresholdKmh),
		}
	}

	return outcome, nil
}

func decodePing(raw []byte) (*Ping, error) {
	var ping Ping
	if err := json.Unmarshal(raw, &ping); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPing, err)
	}
	if ping.Lat == nil || ping.Lng == nil {
		return nil, fmt.Errorf("%w: missing coordinates", ErrMalformedPing)
	}
	if !isFinite(*ping.Lat) || !isFinite(*ping.Lng) {
		return nil, fmt.Errorf("%w: non-finite coordinates", ErrMalformedPing)
	}
	return &ping, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
