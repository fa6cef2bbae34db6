// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/famtrack/internal/config"
)

// ErrInvalidCredentials is returned for any signin failure. The caller
// must not distinguish unknown email from wrong password in responses.
var ErrInvalidCredentials = errors.New("invalid email or password")

// PasswordHasher wraps bcrypt with the configured cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher using the cost from cfg.
func NewPasswordHasher(cfg *config.SecurityConfig) *PasswordHasher {
	return &PasswordHasher{cost: cfg.BcryptCost}
}

// Hash derives a bcrypt hash from a plaintext password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a stored hash. Returns
// ErrInvalidCredentials on mismatch.
func (h *PasswordHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
