// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"net/http"
	"time"
)

// HealthLive reports process liveness. Always 200 while the server is
// able to serve requests.
//
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handlers) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady reports readiness: the database must answer a ping and
// the hub must be running.
//
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handlers) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database is not reachable", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"websocket_clients": h.hub.GetClientCount(),
	}, start)
}
