// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/famtrack/internal/metrics"
	"github.com/tomtom215/famtrack/internal/models"
)

// InsertLocationEvent appends a location event to the log.
//
// Events with non-finite lat/lng are rejected with ErrInvalidCoordinates and
// never persisted. Any other failure is an underlying storage error; the
// caller decides whether to drop (ingestion) or propagate (queries).
func (db *DB) InsertLocationEvent(ctx context.Context, event *models.LocationEvent) error {
	if !isFinite(event.Lat) || !isFinite(event.Lng) {
		return ErrInvalidCoordinates
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO locations (id, user_id, lat, lng, speed, accuracy, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.UserID, event.Lat, event.Lng, event.Speed, event.Accuracy, event.Timestamp,
	)
	metrics.ObserveDBQuery("insert", "locations", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert location event: %w", err)
	}
	return nil
}

// LocationHistory returns a user's events in [from, to], ascending by
// timestamp.
func (db *DB) LocationHistory(ctx context.Context, userID string, from, to time.Time) ([]models.LocationEvent, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, lat, lng, speed, accuracy, timestamp
		 FROM locations
		 WHERE user_id = ? AND timestamp >= ? AND timestamp <= ?
		 ORDER BY timestamp ASC`,
		userID, from, to,
	)
	metrics.ObserveDBQuery("select", "locations", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query location history: %w", err)
	}
	defer closeWithLog(rows, "location history rows")

	var events []models.LocationEvent
	for rows.Next() {
		var e models.LocationEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Lat, &e.Lng, &e.Speed, &e.Accuracy, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan location event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate location history: %w", err)
	}
	return events, nil
}

// LatestPositions returns the maximum-timestamp event per user, joined with
// the user's display name and email. Users with zero events are omitted.
// When excludeUserID is non-empty that user is filtered out, so a caller
// never sees its own pin in the "other people" list.
//
// The window-function form is the SQL equivalent of sort-descending, group
// by user, take first: exactly one row per user with at least one event.
func (db *DB) LatestPositions(ctx context.Context, excludeUserID string) ([]models.LatestPosition, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT l.user_id, u.name, u.email, l.lat, l.lng, l.speed, l.timestamp
		 FROM (
			SELECT *, row_number() OVER (PARTITION BY user_id ORDER BY timestamp DESC) AS rn
			FROM locations
		 ) l
		 JOIN users u ON u.user_id = l.user_id
		 WHERE l.rn = 1 AND (? = '' OR l.user_id <> ?)`,
		excludeUserID, excludeUserID,
	)
	metrics.ObserveDBQuery("select", "locations", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest positions: %w", err)
	}
	defer closeWithLog(rows, "latest position rows")

	var positions []models.LatestPosition
	for rows.Next() {
		var p models.LatestPosition
		if err := rows.Scan(&p.UserID, &p.Name, &p.Email, &p.Lat, &p.Lng, &p.Speed, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan latest position: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate latest positions: %w", err)
	}
	return positions, nil
}

// LatestLocation returns a user's most recent event, or ErrNotFound when the
// user has no events.
func (db *DB) LatestLocation(ctx context.Context, userID string) (*models.LocationEvent, error) {
	start := time.Now()
	var e models.LocationEvent
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, lat, lng, speed, accuracy, timestamp
		 FROM locations
		 WHERE user_id = ?
		 ORDER BY timestamp DESC
		 LIMIT 1`,
		userID,
	).Scan(&e.ID, &e.UserID, &e.Lat, &e.Lng, &e.Speed, &e.Accuracy, &e.Timestamp)
	metrics.ObserveDBQuery("select", "locations", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest location: %w", err)
	}
	return &e, nil
}

// DeleteLocationHistory removes every event for a user and returns the
// number of rows deleted.
func (db *DB) DeleteLocationHistory(ctx context.Context, userID string) (int64, error) {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx, `DELETE FROM locations WHERE user_id = ?`, userID)
	metrics.ObserveDBQuery("delete", "locations", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to delete location history: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows: %w", err)
	}
	return deleted, nil
}

// isFinite reports whether f is a usable coordinate value.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
