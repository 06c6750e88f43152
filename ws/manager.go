package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active user websocket connections so room
// updates can be pushed to every connected member.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn // userID -> conn
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*websocket.Conn)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[userID]; ok && old != conn {
		// close old connection to avoid leaks
		_ = old.Close()
	}
	m.connections[userID] = conn
}

// Unregister removes a user connection.
func (m *Manager) Unregister(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[userID]; ok {
		_ = conn.Close()
		delete(m.connections, userID)
	}
}

// SendToUser sends a text message to a user if connected.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.RLock()
	conn, ok := m.connections[userID]
	m.mu.RUnlock()
	if !ok || conn == nil {
		return errors.New("user not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// Broadcast sends a payload to every listed user that is connected and
// returns how many deliveries succeeded.
func (m *Manager) Broadcast(userIDs []string, payload []byte) int {
	sent := 0
	for _, id := range userIDs {
		if err := m.SendToUser(id, payload); err == nil {
			sent++
		}
	}
	return sent
}

// IsConnected returns whether a user currently holds a connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[userID]
	return ok
}
