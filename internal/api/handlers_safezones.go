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
	"github.com/google/uuid"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/models"
	"github.com/tomtom215/famtrack/internal/validation"
)

// CreateSafeZone stores a labeled circle for the caller's account.
// Safe zones are plain records; FamTrack does not evaluate geofence
// containment against them.
//
// @Summary Create a safe zone
// @Tags safezones
// @Accept json
// @Produce json
// @Param request body models.SafeZoneRequest true "Zone details"
// @Success 201 {object} models.APIResponse{data=models.SafeZone}
// @Failure 400 {object} models.APIResponse
// @Router /safezones [post]
func (h *Handlers) CreateSafeZone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims := auth.ClaimsFromContext(r.Context())

	var req models.SafeZoneRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	zone := &models.SafeZone{
		ParentID: claims.UserID,
		Name:     req.Name,
		Lat:      req.Lat,
		Lng:      req.Lng,
		Radius:   req.Radius,
	}
	if err := h.db.CreateSafeZone(r.Context(), zone); err != nil {
		respondError(w, http.StatusInternalServerError, "INSERT_FAILED", "Failed to create safe zone", err)
		return
	}

	respondSuccess(w, http.StatusCreated, zone, start)
}

// ListSafeZones returns the caller's safe zones, newest first.
//
// @Summary List safe zones
// @Tags safezones
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.SafeZone}
// @Router /safezones [get]
func (h *Handlers) ListSafeZones(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims := auth.ClaimsFromContext(r.Context())

	zones, err := h.db.ListSafeZones(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to load safe zones", err)
		return
	}

	respondSuccess(w, http.StatusOK, zones, start)
}

// DeleteSafeZone removes one of the caller's safe zones. Zones owned
// by other accounts are invisible here, so deleting one reports 404.
//
// @Summary Delete a safe zone
// @Tags safezones
// @Produce json
// @Param id path string true "Zone ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /safezones/{id} [delete]
func (h *Handlers) DeleteSafeZone(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	claims := auth.ClaimsFromContext(r.Context())

	zoneID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Zone ID must be a UUID", nil)
		return
	}

	if err := h.db.DeleteSafeZone(r.Context(), claims.UserID, zoneID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Safe zone not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete safe zone", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "deleted"}, start)
}
