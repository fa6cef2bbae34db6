// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/famtrack/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash"}
	if err := db.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}
	if user.UserID == "" {
		t.Error("CreateUser did not assign a user id")
	}

	byEmail, err := db.GetUserByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error: %v", err)
	}
	if byEmail.UserID != user.UserID || byEmail.Name != "Asha" {
		t.Errorf("GetUserByEmail() = %+v", byEmail)
	}

	byID, err := db.GetUserByID(ctx, user.UserID)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if byID.Email != "asha@example.com" {
		t.Errorf("GetUserByID() email = %q", byID.Email)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &models.User{Name: "A", Email: "dup@example.com", PasswordHash: "h"}
	if err := db.CreateUser(ctx, first); err != nil {
		t.Fatalf("CreateUser() error: %v", err)
	}

	second := &models.User{Name: "B", Email: "dup@example.com", PasswordHash: "h"}
	if err := db.CreateUser(ctx, second); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrEmailExists", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail() error = %v, want ErrNotFound", err)
	}
	if _, err := db.GetUserByID(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByID() error = %v, want ErrNotFound", err)
	}
}
