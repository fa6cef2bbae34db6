// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/famtrack/internal/models"
)

func TestSafeZoneLifecycle(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.seedUser(t, "Alice", "alice@example.com")

	// Create
	rec := srv.doJSON(t, http.MethodPost, "/api/v1/safezones", token, models.SafeZoneRequest{
		Name:   "Home",
		Lat:    40.7128,
		Lng:    -74.006,
		Radius: 150,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}
	var zone models.SafeZone
	decodeData(t, decodeEnvelope(t, rec), &zone)
	if zone.Name != "Home" || zone.Radius != 150 {
		t.Errorf("Unexpected zone: %+v", zone)
	}

	// List
	rec = srv.doJSON(t, http.MethodGet, "/api/v1/safezones", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var zones []models.SafeZone
	decodeData(t, decodeEnvelope(t, rec), &zones)
	if len(zones) != 1 || zones[0].ID != zone.ID {
		t.Fatalf("Expected the created zone, got %+v", zones)
	}

	// Delete
	rec = srv.doJSON(t, http.MethodDelete, "/api/v1/safezones/"+zone.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	rec = srv.doJSON(t, http.MethodGet, "/api/v1/safezones", token, nil)
	decodeData(t, decodeEnvelope(t, rec), &zones)
	if len(zones) != 0 {
		t.Errorf("Expected no zones after delete, got %d", len(zones))
	}
}

func TestSafeZoneValidation(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.seedUser(t, "Alice", "alice@example.com")

	tests := []struct {
		name string
		body models.SafeZoneRequest
	}{
		{"latitude out of range", models.SafeZoneRequest{Name: "Bad", Lat: 95, Lng: 0, Radius: 100}},
		{"longitude out of range", models.SafeZoneRequest{Name: "Bad", Lat: 0, Lng: -190, Radius: 100}},
		{"zero radius", models.SafeZoneRequest{Name: "Bad", Lat: 0, Lng: 0, Radius: 0}},
		{"missing name", models.SafeZoneRequest{Lat: 0, Lng: 0, Radius: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.doJSON(t, http.MethodPost, "/api/v1/safezones", token, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSafeZoneOwnership(t *testing.T) {
	srv := newTestServer(t)
	_, aliceToken := srv.seedUser(t, "Alice", "alice@example.com")
	_, bobToken := srv.seedUser(t, "Bob", "bob@example.com")

	rec := srv.doJSON(t, http.MethodPost, "/api/v1/safezones", aliceToken, models.SafeZoneRequest{
		Name: "Home", Lat: 1, Lng: 2, Radius: 100,
	})
	var zone models.SafeZone
	decodeData(t, decodeEnvelope(t, rec), &zone)

	// Bob cannot see or delete Alice's zone.
	rec = srv.doJSON(t, http.MethodGet, "/api/v1/safezones", bobToken, nil)
	var zones []models.SafeZone
	decodeData(t, decodeEnvelope(t, rec), &zones)
	if len(zones) != 0 {
		t.Errorf("Bob must not see Alice's zones, got %d", len(zones))
	}

	rec = srv.doJSON(t, http.MethodDelete, "/api/v1/safezones/"+zone.ID.String(), bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404 for foreign zone", rec.Code)
	}
}

func TestSafeZoneDeleteInvalidID(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.seedUser(t, "Alice", "alice@example.com")

	rec := srv.doJSON(t, http.MethodDelete, "/api/v1/safezones/not-a-uuid", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}
