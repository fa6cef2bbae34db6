// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package auth

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/logging"
)

const testSecret = "0123456789abcdef0123456789abcdef"

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
}

func newTestJWTManager(t *testing.T, timeout time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      testSecret,
		SessionTimeout: timeout,
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&config.SecurityConfig{JWTSecret: ""})
	if err == nil {
		t.Fatal("Expected error for empty secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)

	token, err := m.GenerateToken("user-1", "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != "user-1" || claims.Name != "Alice" || claims.Email != "alice@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Errorf("Unexpected expiry: %v", claims.ExpiresAt)
	}
}

func TestValidateTokenRejections(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)
	other := newTestJWTManager(t, time.Hour)
	other.secret = []byte(strings.Repeat("x", 32))

	expired := newTestJWTManager(t, -time.Minute)
	expiredToken, err := expired.GenerateToken("user-1", "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	wrongSecret, err := other.GenerateToken("user-1", "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Unsigned token claiming alg=none.
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build alg=none token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"expired token", expiredToken},
		{"wrong secret", wrongSecret},
		{"alg none", noneToken},
		{"garbage", "not.a.token"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.ValidateToken(tt.token); err == nil {
				t.Error("Expected validation to fail")
			}
		})
	}
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(&config.SecurityConfig{BcryptCost: 4})

	hash, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("Hash must not equal the plaintext")
	}

	if err := h.Compare(hash, "s3cret-password"); err != nil {
		t.Errorf("Compare failed for correct password: %v", err)
	}
	if err := h.Compare(hash, "wrong"); err != ErrInvalidCredentials {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}
