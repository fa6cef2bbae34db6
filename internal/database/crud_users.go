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
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/famtrack/internal/metrics"
	"github.com/tomtom215/famtrack/internal/models"
)

// CreateUser inserts a new account. Returns ErrEmailExists when the email is
// already registered.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	// Pre-check mirrors the UNIQUE constraint with a friendlier error.
	// A concurrent duplicate signup still trips the constraint below.
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = ?)`, user.Email,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return ErrEmailExists
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.UserID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	metrics.ObserveDBQuery("insert", "users", start, err)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByEmail fetches an account by email, or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.getUser(ctx, `SELECT user_id, name, email, password_hash, created_at
		FROM users WHERE email = ?`, email)
}

// GetUserByID fetches an account by user id, or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return db.getUser(ctx, `SELECT user_id, name, email, password_hash, created_at
		FROM users WHERE user_id = ?`, userID)
}

func (db *DB) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	start := time.Now()
	var u models.User
	err := db.conn.QueryRowContext(ctx, query, arg).
		Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	metrics.ObserveDBQuery("select", "users", start, err)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}
