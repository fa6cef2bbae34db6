// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package websocket

import (
	"context"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/famtrack/internal/ingest"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024 // location payloads are small
)

// LocationHandler processes raw send-location payloads on behalf of a
// session. *ingest.Pipeline satisfies it.
type LocationHandler interface {
	HandlePing(ctx context.Context, userID string, raw []byte) (ingest.Outcome, error)
}

// clientIDCounter generates unique, monotonically increasing IDs for clients.
// DETERMINISM: Ensures clients can be sorted in a consistent order for
// broadcast operations, eliminating non-deterministic map iteration order.
var clientIDCounter atomic.Uint64

// Client is a middleman between one websocket connection and the hub.
// Each client belongs to exactly one authenticated user; a user with
// several devices holds several clients.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	userID  string
	limiter *rate.Limiter
}

// inboundMessage defers payload decoding so that the ingest pipeline
// sees the raw bytes and owns validation.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewClient creates a client for an authenticated user's connection.
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, hub.cfg.ClientSendBuffer),
		userID:  userID,
		limiter: rate.NewLimiter(rate.Limit(hub.cfg.PingRatePerSec), hub.cfg.PingBurst),
	}
}

// ID returns the client's unique identifier for deterministic ordering
func (c *Client) ID() uint64 {
	return c.id
}

// UserID returns the authenticated user this session belongs to.
func (c *Client) UserID() string {
	return c.userID
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Uint64("client_id", c.id).Msg("unexpected websocket close error")
			}
			break
		}

		switch msg.Type {
		case MessageTypePing:
			pong := Message{Type: MessageTypePong}
			select {
			case c.send <- pong:
			default:
			}

		case MessageTypeSendLocation:
			c.handleLocation(msg.Data)

		default:
			// Unknown message types are ignored, not fatal.
			logging.Debug().Str("message_type", msg.Type).Uint64("client_id", c.id).Msg("ignoring unknown websocket message")
		}
	}
}

// handleLocation runs one send-location payload through the ingest
// pipeline and applies the resulting broadcast effects. The sender
// identity always comes from the session, never from the payload.
func (c *Client) handleLocation(raw []byte) {
	if !c.limiter.Allow() {
		metrics.PingsDropped.WithLabelValues(metrics.DropReasonThrottled).Inc()
		logging.Debug().Str("user_id", c.userID).Msg("throttling location pings")
		return
	}

	outcome, err := c.hub.handler.HandlePing(context.Background(), c.userID, raw)
	if err != nil {
		// Malformed and failed pings are dropped without feedback.
		return
	}

	c.hub.BroadcastLocation(outcome.Update)
	if outcome.Alert != nil {
		// The alert goes to the session that reported the speed, not
		// to the whole family.
		c.hub.Notify(c, Message{Type: MessageTypeSpeedAlert, Data: outcome.Alert})
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Error().Err(err).Msg("failed to write close message")
				}
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				logging.Error().Err(err).Msg("failed to write JSON message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
