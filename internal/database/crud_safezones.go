// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/famtrack/internal/metrics"
	"github.com/tomtom215/famtrack/internal/models"
)

// CreateSafeZone stores a labeled circle for a parent account.
func (db *DB) CreateSafeZone(ctx context.Context, zone *models.SafeZone) error {
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = time.Now()
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO safe_zones (id, parent_id, name, lat, lng, radius, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		zone.ID, zone.ParentID, zone.Name, zone.Lat, zone.Lng, zone.Radius, zone.CreatedAt,
	)
	metrics.ObserveDBQuery("insert", "safe_zones", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert safe zone: %w", err)
	}
	return nil
}

// ListSafeZones returns a parent's zones, newest first.
func (db *DB) ListSafeZones(ctx context.Context, parentID string) ([]models.SafeZone, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, parent_id, name, lat, lng, radius, created_at
		 FROM safe_zones
		 WHERE parent_id = ?
		 ORDER BY created_at DESC`,
		parentID,
	)
	metrics.ObserveDBQuery("select", "safe_zones", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to query safe zones: %w", err)
	}
	defer closeWithLog(rows, "safe zone rows")

	var zones []models.SafeZone
	for rows.Next() {
		var z models.SafeZone
		if err := rows.Scan(&z.ID, &z.ParentID, &z.Name, &z.Lat, &z.Lng, &z.Radius, &z.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan safe zone: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate safe zones: %w", err)
	}
	return zones, nil
}

// DeleteSafeZone removes one zone owned by parentID. Returns ErrNotFound if
// no such zone exists (or it belongs to a different parent).
func (db *DB) DeleteSafeZone(ctx context.Context, parentID string, zoneID uuid.UUID) error {
	start := time.Now()
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM safe_zones WHERE id = ? AND parent_id = ?`, zoneID, parentID)
	metrics.ObserveDBQuery("delete", "safe_zones", start, err)
	if err != nil {
		return fmt.Errorf("failed to delete safe zone: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
