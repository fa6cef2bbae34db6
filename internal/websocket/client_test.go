// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package websocket

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/famtrack/internal/ingest"
	"github.com/tomtom215/famtrack/internal/models"
)

func TestNewClientAssignsIncreasingIDs(t *testing.T) {
	hub := NewHub(&stubHandler{}, testTrackingConfig())

	a := NewClient(hub, nil, "alice")
	b := NewClient(hub, nil, "bob")

	if a.ID() >= b.ID() {
		t.Errorf("Expected strictly increasing IDs, got %d then %d", a.ID(), b.ID())
	}
	if a.UserID() != "alice" || b.UserID() != "bob" {
		t.Error("Client must keep the user it was created for")
	}
}

func TestClient_HandleLocationBroadcastsUpdate(t *testing.T) {
	handler := &stubHandler{
		outcome: ingest.Outcome{
			Update: &models.LocationUpdate{Lat: 40.7, Lng: -74.0, Speed: 30},
		},
	}
	hub := setupHub(t, handler)

	sender := createTestClient(hub, "alice")
	observer := createTestClient(hub, "bob")
	registerClient(hub, sender)
	registerClient(hub, observer)

	sender.handleLocation([]byte(`{"lat":40.7,"lng":-74.0,"speed":30}`))

	for _, c := range []*Client{sender, observer} {
		select {
		case msg := <-c.send:
			if msg.Type != MessageTypeReceiveLocation {
				t.Errorf("Type = %q, want %q", msg.Type, MessageTypeReceiveLocation)
			}
			update, ok := msg.Data.(*models.LocationUpdate)
			if !ok {
				t.Fatalf("Expected *models.LocationUpdate, got %T", msg.Data)
			}
			if update.UserID != "alice" {
				t.Errorf("Update attributed to %q, want the sender alice", update.UserID)
			}
		case <-time.After(200 * time.Millisecond):
			t.Errorf("Session %d did not receive the update", c.ID())
		}
	}
}

func TestClient_HandleLocationAlertsOriginOnly(t *testing.T) {
	handler := &stubHandler{
		outcome: ingest.Outcome{
			Update: &models.LocationUpdate{Speed: 95},
			Alert:  &models.SpeedAlert{UserID: "alice", Speed: 95, Message: "slow down"},
		},
	}
	hub := setupHub(t, handler)

	sender := createTestClient(hub, "alice")
	observer := createTestClient(hub, "bob")
	registerClient(hub, sender)
	registerClient(hub, observer)

	sender.handleLocation([]byte(`{"lat":1,"lng":2,"speed":95}`))
	time.Sleep(50 * time.Millisecond)

	// Sender sees both the fan-out update and the direct alert.
	types := make(map[string]int)
	for len(sender.send) > 0 {
		types[(<-sender.send).Type]++
	}
	if types[MessageTypeReceiveLocation] != 1 || types[MessageTypeSpeedAlert] != 1 {
		t.Errorf("Sender messages = %v, want one update and one alert", types)
	}

	// Observer sees only the update.
	types = make(map[string]int)
	for len(observer.send) > 0 {
		types[(<-observer.send).Type]++
	}
	if types[MessageTypeSpeedAlert] != 0 {
		t.Errorf("Observer must not receive speed alerts, got %v", types)
	}
	if types[MessageTypeReceiveLocation] != 1 {
		t.Errorf("Observer messages = %v, want exactly one update", types)
	}
}

func TestClient_HandleLocationDropsOnError(t *testing.T) {
	handler := &stubHandler{err: errors.New("malformed")}
	hub := setupHub(t, handler)

	sender := createTestClient(hub, "alice")
	registerClient(hub, sender)

	sender.handleLocation([]byte(`{"lat":`))
	time.Sleep(50 * time.Millisecond)

	select {
	case msg := <-sender.send:
		t.Errorf("Dropped ping must produce no messages, got %+v", msg)
	default:
	}
}

func TestClient_HandleLocationThrottled(t *testing.T) {
	handler := &stubHandler{
		outcome: ingest.Outcome{Update: &models.LocationUpdate{}},
	}
	cfg := testTrackingConfig()
	cfg.PingRatePerSec = 1
	cfg.PingBurst = 1
	hub := NewHub(handler, cfg)
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	sender := NewClient(hub, nil, "alice")
	registerClient(hub, sender)

	// Burst of 1: the first ping passes, the second is throttled.
	sender.handleLocation([]byte(`{"lat":1,"lng":2,"speed":0}`))
	sender.handleLocation([]byte(`{"lat":1,"lng":2,"speed":0}`))
	time.Sleep(50 * time.Millisecond)

	updates := 0
	for len(sender.send) > 0 {
		if (<-sender.send).Type == MessageTypeReceiveLocation {
			updates++
		}
	}
	if updates != 1 {
		t.Errorf("Expected exactly 1 update after throttling, got %d", updates)
	}
}
