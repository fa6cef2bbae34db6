// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthenticate(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)
	mw := NewMiddleware(m)

	token, err := m.GenerateToken("user-1", "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	var gotClaims *Claims
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantUser   string
	}{
		{
			name:       "bearer header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) },
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name: "session cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name:       "query parameter",
			setup:      func(r *http.Request) { r.URL.RawQuery = "token=" + token },
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name:       "missing token",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Basic dXNlcjpwYXNz") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "Bearer not.a.token") },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantUser != "" {
				if gotClaims == nil || gotClaims.UserID != tt.wantUser {
					t.Errorf("Claims = %+v, want user %q", gotClaims, tt.wantUser)
				}
			}
		})
	}
}

func TestClaimsFromContextWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if claims := ClaimsFromContext(req.Context()); claims != nil {
		t.Errorf("Expected nil claims, got %+v", claims)
	}
}
