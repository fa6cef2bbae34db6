// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/ingest"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/models"
	"github.com/tomtom215/famtrack/internal/websocket"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Output: io.Discard})
}

const testSecret = "0123456789abcdef0123456789abcdef"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 5000},
		Database: config.DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "256MB",
			Threads:   2,
		},
		Security: config.SecurityConfig{
			JWTSecret:          testSecret,
			SessionTimeout:     time.Hour,
			BcryptCost:         4,
			RateLimitReqs:      1000,
			RateLimitWindow:    time.Minute,
			LoginRateLimitReqs: 1000,
			CORSOrigins:        []string{"*"},
		},
		Tracking: config.TrackingConfig{
			SpeedThresholdKmh: 60,
			HistoryDays:       7,
			BroadcastBuffer:   16,
			ClientSendBuffer:  16,
			PingRatePerSec:    100,
			PingBurst:         100,
		},
	}
}

// testServer bundles everything a handler test needs.
type testServer struct {
	handler http.Handler
	db      *database.DB
	jwt     *auth.JWTManager
	cfg     *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := testConfig()

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("Failed to create JWT manager: %v", err)
	}

	pipeline := ingest.NewPipeline(db, &cfg.Tracking)
	hub := websocket.NewHub(pipeline, &cfg.Tracking)
	go hub.Run()

	handlers := NewHandlers(db, hub, jwtManager, auth.NewPasswordHasher(&cfg.Security), cfg)
	router := NewRouter(handlers, auth.NewMiddleware(jwtManager), cfg)

	return &testServer{
		handler: router.Setup(),
		db:      db,
		jwt:     jwtManager,
		cfg:     cfg,
	}
}

// seedUser inserts a user directly and returns it with a valid token.
func (s *testServer) seedUser(t *testing.T, name, email string) (*models.User, string) {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "unused"}
	if err := s.db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	token, err := s.jwt.GenerateToken(user.UserID, user.Name, user.Email)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return user, token
}

// seedEvent inserts a location event directly.
func (s *testServer) seedEvent(t *testing.T, userID string, lat, lng, speed float64, ts time.Time) {
	t.Helper()
	err := s.db.InsertLocationEvent(context.Background(), &models.LocationEvent{
		UserID:    userID,
		Lat:       lat,
		Lng:       lng,
		Speed:     speed,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("Failed to seed event: %v", err)
	}
}

// doJSON performs a request with an optional JSON body and bearer token.
func (s *testServer) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope parses the standard response envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response envelope: %v (body: %s)", err, rec.Body.String())
	}
	return &resp
}

// decodeData re-marshals envelope data into a concrete type.
func decodeData(t *testing.T, resp *models.APIResponse, dst interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}
