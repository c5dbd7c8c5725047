package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"TradeCraft/internal/metrics"
	"TradeCraft/internal/model"
)

// Envelope is the message pushed to WebSocket clients.
type Envelope struct {
	Type string    `json:"type"`
	TS   time.Time `json:"ts"`
	Data any       `json:"data"`
}

// Hub fans snapshots out to connected WebSocket clients.
type Hub struct {
	metrics *metrics.Metrics
	logger  *zap.Logger

	mu      sync.RWMutex
	clients map[*wsClient]bool
	latest  []byte
}

func NewHub(m *metrics.Metrics, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{metrics: m, logger: logger.Named("hub"), clients: make(map[*wsClient]bool)}
}

// PublishSnapshot matches dashboard.Hook.
func (h *Hub) PublishSnapshot(_ context.Context, snap *model.Snapshot) {
	h.Broadcast("snapshot", snap)
}

// Broadcast sends an envelope to every client. Slow clients drop messages.
func (h *Hub) Broadcast(kind string, data any) {
	msg, err := json.Marshal(Envelope{Type: kind, TS: time.Now(), Data: data})
	if err != nil {
		h.logger.Error("encode envelope", zap.String("type", kind), zap.Error(err))
		return
	}

	h.mu.Lock()
	if kind == "snapshot" {
		h.latest = msg
	}
	h.mu.Unlock()

	// Sends happen under the read lock so remove cannot close a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Debug("dropping message for slow client")
		}
	}
}

// ClientCount returns the number of connected WS clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// serve registers conn and starts its pumps. The latest snapshot is sent first.
func (h *Hub) serve(conn *websocket.Conn) {
	c := &wsClient{conn: conn, send: make(chan []byte, 16), hub: h}

	h.mu.Lock()
	h.clients[c] = true
	count := len(h.clients)
	if h.latest != nil {
		c.send <- h.latest
	}
	h.mu.Unlock()

	h.metrics.ClientDelta(1)
	h.logger.Info("ws client connected", zap.Int("clients", count))

	go c.writePump()
	go c.readPump()
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	if !h.clients[c] {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.mu.Unlock()
	h.metrics.ClientDelta(-1)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		h.remove(c)
	}
}

// wsClient represents a single WebSocket peer.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; clients do not send commands.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
		c.hub.logger.Info("ws client disconnected")
	}()

	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
