package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"dealfeed/types"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// streamClient serialises writes to one websocket connection
type streamClient struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *streamClient) send(env types.Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(env)
}

func (c *streamClient) closeWith(code int, reason string) {
	c.writeMu.Lock()
	msg := websocket.FormatCloseMessage(code, reason)
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	c.writeMu.Unlock()
	_ = c.conn.Close()
}

// Hub tracks connected stream clients and fans deals out to them
type Hub struct {
	mu      sync.Mutex
	clients map[*streamClient]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*streamClient]struct{}),
		logger:  logger.With("component", "hub"),
	}
}

func (h *Hub) add(conn *websocket.Conn) *streamClient {
	c := &streamClient{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *Hub) remove(c *streamClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the item to every client; clients that fail are dropped.
// It returns how many clients received the item.
func (h *Hub) Broadcast(item types.DealItem) int {
	h.mu.Lock()
	targets := make([]*streamClient, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	env := types.NewDealEnvelope(item)
	sent := 0
	for _, c := range targets {
		if err := c.send(env); err != nil {
			h.logger.Debug("dropping stale client", "error", err)
			h.remove(c)
			_ = c.conn.Close()
			continue
		}
		sent++
	}
	return sent
}

// Publish lets the hub act as a poller sink
func (h *Hub) Publish(_ context.Context, item types.DealItem) error {
	h.Broadcast(item)
	return nil
}

// CloseAll disconnects every client with a normal closure
func (h *Hub) CloseAll() {
	h.mu.Lock()
	targets := make([]*streamClient, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.clients = make(map[*streamClient]struct{})
	h.mu.Unlock()

	for _, c := range targets {
		c.closeWith(websocket.CloseGoingAway, "server shutting down")
	}
}
