// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/metrics"
	"github.com/tomtom215/famtrack/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was canceled.
	// This is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeSendLocation    = "send-location"
	MessageTypeReceiveLocation = "receive-location"
	MessageTypeSpeedAlert      = "speed-alert"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
)

// Drop causes for famtrack_websocket_drops_total.
const (
	dropCauseChannelFull  = "channel_full"
	dropCauseSlowConsumer = "slow_consumer"
)

// Message represents a WebSocket message
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active sessions and fans location updates
// out to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex

	handler LocationHandler
	cfg     *config.TrackingConfig
}

// NewHub creates a new Hub. Inbound send-location payloads are passed
// to handler; cfg sizes the broadcast and per-client buffers.
func NewHub(handler LocationHandler, cfg *config.TrackingConfig) *Hub {
	return &Hub{
		broadcast:  make(chan Message, cfg.BroadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		handler:    handler,
		cfg:        cfg,
	}
}

// Run starts the hub (blocks forever, no context support).
//
// Deprecated: Use RunWithContext for supervised operation.
//
// DETERMINISM: Uses priority-based selection to ensure predictable behavior:
// - Priority 1: Client lifecycle events (Register/Unregister)
// - Priority 2: Broadcast messages
// This ensures client state is always consistent before processing messages.
func (h *Hub) Run() {
	for {
		// Priority 1: Handle client lifecycle events first (non-blocking check)
		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		default:
			// No lifecycle events pending, proceed to broadcast
		}

		// Priority 2: Handle broadcast messages (blocking wait)
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// RunWithContext starts the hub with context support for graceful shutdown.
// This method is designed for use with suture supervision.
//
// When the context is canceled:
//  1. All connected clients are gracefully closed
//  2. The method returns ctx.Err()
//
// This allows the hub to be restarted by a supervisor without leaving
// orphaned connections.
//
// DETERMINISM: Uses priority-based selection to ensure predictable behavior:
// - Priority 1: Context cancellation (shutdown)
// - Priority 2: Client lifecycle events (Register/Unregister)
// - Priority 3: Broadcast messages
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: Check for shutdown (highest priority, non-blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
			// Context not canceled, continue
		}

		// Priority 2: Handle client lifecycle events (non-blocking check)
		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		default:
			// No lifecycle events pending
		}

		// Priority 3: Handle broadcast messages or wait for any event (blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSClients.Set(float64(total))
	logging.Info().Uint64("client_id", client.id).Str("user_id", client.userID).Int("total_clients", total).Msg("websocket session connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSClients.Set(float64(total))
	logging.Info().Uint64("client_id", client.id).Str("user_id", client.userID).Int("total_clients", total).Msg("websocket session disconnected")
}

// logGracefulShutdown closes all connected clients and logs structured
// shutdown information. ctx.Err() is NOT logged as an error because
// context cancellation is expected behavior during graceful shutdown.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.Canceled:
		return ShutdownReasonContextCanceled
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// broadcastToClients sends a message to all connected clients in a deterministic order.
// DETERMINISM: Sorts clients by ID to ensure consistent iteration order.
// A client whose send buffer is full cannot keep up with the update
// rate and is disconnected rather than allowed to stall the loop.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	// Track clients to remove (can't modify map during iteration)
	var toRemove []*Client

	for _, client := range clients {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSBroadcastsDropped.WithLabelValues(dropCauseSlowConsumer).Inc()
		logging.Warn().Uint64("client_id", client.id).Str("user_id", client.userID).Msg("disconnecting slow websocket session")
	}
	if len(toRemove) > 0 {
		metrics.WSClients.Set(float64(len(h.clients)))
	}
}

// closeAllClients closes all connected sessions in ID order. Called
// during shutdown to ensure clean termination.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSClients.Set(0)
	logging.Info().Msg("closed all websocket sessions during shutdown")
}

// BroadcastLocation fans a location update out to every connected
// session, including the sender.
func (h *Hub) BroadcastLocation(update *models.LocationUpdate) {
	message := Message{
		Type: MessageTypeReceiveLocation,
		Data: update,
	}

	select {
	case h.broadcast <- message:
	default:
		metrics.WSBroadcastsDropped.WithLabelValues(dropCauseChannelFull).Inc()
		logging.Warn().Str("user_id", update.UserID).Msg("broadcast channel full, dropping location update")
	}
}

// BroadcastJSON enqueues an arbitrary typed message for every
// connected session.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{
		Type: messageType,
		Data: data,
	}

	select {
	case h.broadcast <- message:
	default:
		metrics.WSBroadcastsDropped.WithLabelValues(dropCauseChannelFull).Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping JSON message")
	}
}

// Notify sends a message to a single session. If the client is no
// longer registered, the message is silently discarded: the session is
// gone and there is nobody to deliver to.
func (h *Hub) Notify(client *Client, message Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !h.clients[client] {
		return
	}

	select {
	case client.send <- message:
	default:
		metrics.WSBroadcastsDropped.WithLabelValues(dropCauseChannelFull).Inc()
		logging.Warn().Uint64("client_id", client.id).Msg("session buffer full, dropping direct message")
	}
}

// GetClientCount returns the number of connected sessions
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
