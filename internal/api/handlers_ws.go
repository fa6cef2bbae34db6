// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"net/http"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/websocket"
)

// WebSocket upgrades an authenticated request to a realtime session
// and registers it with the hub. The session is bound to the user from
// the token; the connection starts receiving fan-out immediately and
// may send send-location and ping messages.
//
// @Summary Open a realtime session
// @Tags realtime
// @Success 101 "Switching Protocols"
// @Failure 401 {object} models.APIResponse
// @Router /ws [get]
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logging.Warn().Err(err).Str("user_id", claims.UserID).Msg("WebSocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, claims.UserID)
	h.hub.Register <- client
	client.Start()
}
