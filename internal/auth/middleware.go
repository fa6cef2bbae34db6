// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/famtrack/internal/logging"
)

type contextKey string

// ClaimsContextKey is the request context key holding the
// authenticated *Claims after Authenticate has run.
const ClaimsContextKey contextKey = "claims"

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "token"

// Middleware enforces token authentication on HTTP routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates authentication middleware backed by the given
// token manager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate is chi-compatible middleware that rejects requests
// without a valid session token and stores the claims on the request
// context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := TokenFromRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest extracts the session token from the Authorization
// header, the session cookie, or the token query parameter, in that
// order. The query parameter exists for the WebSocket endpoint:
// browser WebSocket clients cannot set custom headers.
func TokenFromRequest(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("unauthorized: invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", fmt.Errorf("unauthorized: missing token")
}

// ClaimsFromContext returns the authenticated claims stored by
// Authenticate, or nil when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsContextKey).(*Claims)
	return claims
}
