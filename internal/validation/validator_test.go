// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/famtrack/internal/models"
)

func TestValidateSignupRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SignupRequest
		wantErr bool
		field   string
	}{
		{
			name: "valid",
			req:  models.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "hunter2hunter2"},
		},
		{
			name:    "missing email",
			req:     models.SignupRequest{Name: "Asha", Password: "hunter2hunter2"},
			wantErr: true,
			field:   "Email",
		},
		{
			name:    "bad email",
			req:     models.SignupRequest{Name: "Asha", Email: "not-an-email", Password: "hunter2hunter2"},
			wantErr: true,
			field:   "Email",
		},
		{
			name:    "short password",
			req:     models.SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "short"},
			wantErr: true,
			field:   "Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if (verr != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() = %v, wantErr %v", verr, tt.wantErr)
			}
			if verr != nil && tt.field != "" {
				found := false
				for _, f := range verr.Fields() {
					if f.Field == tt.field {
						found = true
					}
				}
				if !found {
					t.Errorf("expected failure on field %s, got %v", tt.field, verr.Fields())
				}
			}
		})
	}
}

func TestValidateSafeZoneBounds(t *testing.T) {
	bad := models.SafeZoneRequest{Name: "Home", Lat: 91, Lng: 0, Radius: 50}
	verr := ValidateStruct(&bad)
	if verr == nil {
		t.Fatal("expected lat out-of-range failure")
	}
	if !strings.Contains(verr.Error(), "Lat") {
		t.Errorf("error should mention Lat, got %q", verr.Error())
	}

	good := models.SafeZoneRequest{Name: "Home", Lat: 28.6139, Lng: 77.209, Radius: 100}
	if verr := ValidateStruct(&good); verr != nil {
		t.Errorf("unexpected failure: %v", verr)
	}
}
