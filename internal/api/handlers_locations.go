// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/history"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/models"
)

// History returns a user's chronological location trail.
//
// Query parameters:
//   - days: lookback window, default from config
//   - hourly: when true, downsample to the earliest event of each hour
//
// @Summary Location history for a user
// @Tags locations
// @Produce json
// @Param userId path string true "User ID"
// @Param days query int false "Lookback window in days"
// @Param hourly query bool false "Downsample to one event per hour"
// @Success 200 {object} models.APIResponse{data=[]models.LocationEvent}
// @Router /history/{userId} [get]
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userId")

	days := getIntParam(r, "days", h.cfg.Tracking.HistoryDays)
	if days < 1 {
		days = h.cfg.Tracking.HistoryDays
	}
	now := time.Now()
	from := now.AddDate(0, 0, -days)

	events, err := h.db.LocationHistory(r.Context(), userID, from, now)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load location history", err)
		return
	}

	if getBoolParam(r, "hourly") {
		events = history.Hourly(events)
	}

	respondSuccess(w, http.StatusOK, events, start)
}

// Users returns the latest known position of every family member
// except the caller. Members who have never reported a position are
// omitted.
//
// @Summary Latest position per family member
// @Tags locations
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.LatestPosition}
// @Router /users [get]
func (h *Handlers) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	callerID := ""
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	positions, err := h.db.LatestPositions(r.Context(), callerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load latest positions", err)
		return
	}

	respondSuccess(w, http.StatusOK, positions, start)
}

// Latest returns a single user's most recent location event.
//
// @Summary Most recent event for a user
// @Tags locations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.APIResponse{data=models.LocationEvent}
// @Failure 404 {object} models.APIResponse
// @Router /users/{userId}/latest [get]
func (h *Handlers) Latest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userId")

	event, err := h.db.LatestLocation(r.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "No location recorded for this user", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load latest location", err)
		return
	}

	respondSuccess(w, http.StatusOK, event, start)
}

// DeleteHistory removes every stored location event for a user and
// reports the count. Deleting a user with no events succeeds with a
// zero count.
//
// @Summary Delete a user's location history
// @Tags locations
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} models.APIResponse{data=models.DeleteHistoryResponse}
// @Router /history/{userId} [delete]
func (h *Handlers) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "userId")

	deleted, err := h.db.DeleteLocationHistory(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete location history", err)
		return
	}

	logging.Info().Str("user_id", userID).Int64("deleted", deleted).Msg("Location history deleted")
	respondSuccess(w, http.StatusOK, models.DeleteHistoryResponse{Deleted: deleted}, start)
}
