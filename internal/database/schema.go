// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements creates the three FamTrack tables and their indexes.
//
// locations is indexed by (user_id, timestamp) for range scans and by
// user_id alone for most-recent lookups. There is no UPDATE path to any of
// these tables except safe-zone deletion and the per-user location purge.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       VARCHAR PRIMARY KEY,
		name          VARCHAR NOT NULL,
		email         VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id        UUID PRIMARY KEY,
		user_id   VARCHAR NOT NULL,
		lat       DOUBLE NOT NULL,
		lng       DOUBLE NOT NULL,
		speed     DOUBLE NOT NULL DEFAULT 0,
		accuracy  DOUBLE NOT NULL DEFAULT 0,
		timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_locations_user_ts ON locations (user_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_locations_user ON locations (user_id)`,
	`CREATE TABLE IF NOT EXISTS safe_zones (
		id         UUID PRIMARY KEY,
		parent_id  VARCHAR NOT NULL,
		name       VARCHAR NOT NULL,
		lat        DOUBLE NOT NULL,
		lng        DOUBLE NOT NULL,
		radius     DOUBLE NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_safe_zones_parent ON safe_zones (parent_id)`,
}

// createSchema creates tables and indexes if they do not exist.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
