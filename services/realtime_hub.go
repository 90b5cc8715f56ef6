package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSClient is one connected admin dashboard.
type WSClient struct {
	Conn *websocket.Conn
	mu   sync.Mutex
}

func (c *WSClient) write(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

// Ping sends a control frame under the same lock as broadcasts;
// gorilla/websocket allows only one concurrent writer per connection.
func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// RealtimeHub fans out activity events to admin dashboards. Purely
// best-effort: a dead connection is dropped, a send failure never
// reaches the write path that triggered it.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

type LogCreatedEvent struct {
	Kind      string    `json:"kind"`
	UserID    uint      `json:"user_id"`
	Date      string    `json:"date"`
	ItemCount int       `json:"item_count"`
	At        time.Time `json:"at"`
}

// BroadcastLogCreated notifies every connected admin that a staff
// member just stored a batch of items.
func (h *RealtimeHub) BroadcastLogCreated(userID uint, date string, itemCount int) {
	msg, _ := json.Marshal(LogCreatedEvent{
		Kind:      "log.created",
		UserID:    userID,
		Date:      date,
		ItemCount: itemCount,
		At:        time.Now(),
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.write(msg)
	}
}
