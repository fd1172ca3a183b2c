// Package realtime fans published events out to live websocket subscribers.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"vigil/config"
	"vigil/internal/domain/service"

	"github.com/gorilla/websocket"
	"go.uber.org/fx"
)

// Envelope is the frame written to subscribers.
type Envelope struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub tracks the live connections. Broadcast never waits on a subscriber:
// a frame that does not fit in a client's buffer is dropped for that client.
type Hub struct {
	mu           sync.RWMutex
	clients      map[*Client]struct{}
	clientBuffer int
	closed       bool
	logger       *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(clientBuffer int, logger *slog.Logger) *Hub {
	if clientBuffer <= 0 {
		clientBuffer = 256
	}

	return &Hub{
		clients:      make(map[*Client]struct{}),
		clientBuffer: clientBuffer,
		logger:       logger,
	}
}

var _ service.Broadcaster = (*Hub)(nil)

// HubParams defines the dependencies for the hub
type HubParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// NewHubWithLifecycle creates the hub and disconnects every client on shutdown.
func NewHubWithLifecycle(params HubParams) *Hub {
	hub := NewHub(params.Config.Realtime.ClientBuffer, params.Logger)

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()

			return nil
		},
	})

	return hub
}

// Attach registers a websocket connection and starts its pumps.
func (h *Hub) Attach(conn *websocket.Conn) *Client {
	client := newClient(h, conn, h.clientBuffer)
	if !h.register(client) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()

		return client
	}

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) register(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[client] = struct{}{}
	h.logger.Debug("Live client registered", slog.String("client_id", client.id), slog.Int("clients", len(h.clients)))

	return true
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Debug("Live client unregistered", slog.String("client_id", client.id), slog.Int("clients", len(h.clients)))
}

// Broadcast sends the event to every registered client.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload, Timestamp: time.Now()})
	if err != nil {
		h.logger.Error("Failed to marshal live event", slog.String("event", event), slog.Any("error", err))

		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.logger.Warn("Live client buffer full, dropping event",
				slog.String("client_id", client.id),
				slog.String("event", event))
		}
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Close unregisters every client and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
