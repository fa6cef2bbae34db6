// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/websocket"
)

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	db       *database.DB
	hub      *websocket.Hub
	jwt      *auth.JWTManager
	hasher   *auth.PasswordHasher
	cfg      *config.Config
	upgrader gorillaws.Upgrader
}

// NewHandlers creates the handler set for the router.
func NewHandlers(db *database.DB, hub *websocket.Hub, jwt *auth.JWTManager, hasher *auth.PasswordHasher, cfg *config.Config) *Handlers {
	return &Handlers{
		db:     db,
		hub:    hub,
		jwt:    jwt,
		hasher: hasher,
		cfg:    cfg,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.Security.CORSOrigins),
		},
	}
}

// originChecker builds the WebSocket origin check from the CORS
// allowlist. A wildcard entry disables the check, matching the HTTP
// CORS behavior.
func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}

	return func(r *http.Request) bool {
		if wildcard {
			return true
		}
		origin := r.Header.Get("Origin")
		// Same-origin requests and non-browser clients send no Origin.
		if origin == "" {
			return true
		}
		return allowed[origin]
	}
}
