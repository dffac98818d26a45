// Package hub fans conversation events out to participants' WebSocket
// connections.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrBufferFull is returned when a connection's send buffer is full.
var ErrBufferFull = errors.New("connection send buffer full")

// Connection represents a single WebSocket connection of one user.
type Connection struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
	mu     sync.Mutex
}

// Hub manages all WebSocket connections.
type Hub struct {
	// Connections indexed by connection ID
	connections map[string]*Connection

	// users maps user ID to the set of its connection IDs
	users map[string]map[string]bool

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *userMessage
	done       chan struct{}

	mu sync.RWMutex
}

type userMessage struct {
	UserID string
	Data   []byte
}

// New creates a new Hub.
func New() *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		users:       make(map[string]map[string]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *userMessage, 256),
		done:        make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, conn := range h.connections {
				close(conn.Send)
				delete(h.connections, id)
			}
			h.users = make(map[string]map[string]bool)
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.connections[conn.ID] = conn
			if h.users[conn.UserID] == nil {
				h.users[conn.UserID] = make(map[string]bool)
			}
			h.users[conn.UserID][conn.ID] = true
			h.mu.Unlock()
			log.Printf("Connection registered: %s (user: %s)", conn.ID, conn.UserID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.connections[conn.ID]; ok {
				delete(h.connections, conn.ID)
				if h.users[conn.UserID] != nil {
					delete(h.users[conn.UserID], conn.ID)
					if len(h.users[conn.UserID]) == 0 {
						delete(h.users, conn.UserID)
					}
				}
				close(conn.Send)
			}
			h.mu.Unlock()
			log.Printf("Connection unregistered: %s", conn.ID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for connID := range h.users[msg.UserID] {
				conn, exists := h.connections[connID]
				if !exists {
					continue
				}
				select {
				case conn.Send <- msg.Data:
				default:
					// Buffer full, drop the slow consumer
					log.Printf("Connection %s buffer full, closing", connID)
					go h.Unregister(conn)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// NewConnection creates a connection for userID; it still needs Register.
func (h *Hub) NewConnection(ws *websocket.Conn, userID string) *Connection {
	return &Connection{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   ws,
		Send:   make(chan []byte, 256),
	}
}

// Register registers a connection with the hub.
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister unregisters a connection from the hub.
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// SendToUser queues data for every connection of userID.
func (h *Hub) SendToUser(userID string, data []byte) {
	select {
	case h.broadcast <- &userMessage{UserID: userID, Data: data}:
	case <-h.done:
	}
}

// Notify sends v as JSON to each listed user once.
func (h *Hub) Notify(ctx context.Context, userIDs []string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		select {
		case h.broadcast <- &userMessage{UserID: id, Data: data}:
		case <-h.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// GetConnectionCount returns the number of active connections.
func (h *Hub) GetConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// HasActiveConnections checks if a user has any active connections.
func (h *Hub) HasActiveConnections(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

// WriteMessage writes a message to the connection with proper locking.
func (c *Connection) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// SetWriteDeadline sets the write deadline for the connection.
func (c *Connection) SetWriteDeadline(t time.Time) error {
	return c.Conn.SetWriteDeadline(t)
}

// SetReadDeadline sets the read deadline for the connection.
func (c *Connection) SetReadDeadline(t time.Time) error {
	return c.Conn.SetReadDeadline(t)
}

// Close closes the underlying WebSocket.
func (c *Connection) Close() error {
	return c.Conn.Close()
}
