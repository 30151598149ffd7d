package connections

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// TimeoutConfig holds the various timeout settings for WebSocket connections
type TimeoutConfig struct {
	PongWait   time.Duration
	PingPeriod time.Duration
	WriteWait  time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	PongWait:   30 * time.Second,
	PingPeriod: 27 * time.Second, // (PongWait * 9) / 10
	WriteWait:  10 * time.Second,
}

// Connection is one tracked chat socket
type Connection struct {
	ID          string
	Conn        *websocket.Conn
	RemoteAddr  string
	ConnectedAt time.Time

	requests atomic.Int64
}

// CountRequest records one chat request on the connection and returns the
// running total
func (c *Connection) CountRequest() int64 {
	return c.requests.Add(1)
}

func (c *Connection) Requests() int64 {
	return c.requests.Load()
}

// Manager handles WebSocket connection lifecycle
type Manager struct {
	mu          sync.RWMutex
	connections sync.Map
	timeouts    TimeoutConfig
}

// NewManager creates a new connection manager with the specified timeouts
func NewManager(timeouts TimeoutConfig) *Manager {
	return &Manager{
		timeouts: timeouts,
	}
}

// Register tracks a new WebSocket connection under a fresh id
func (m *Manager) Register(conn *websocket.Conn, remoteAddr string) *Connection {
	c := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		RemoteAddr:  remoteAddr,
		ConnectedAt: time.Now(),
	}
	m.connections.Store(c.ID, c)

	log.Debug().
		Str("connection_id", c.ID).
		Str("remote_addr", remoteAddr).
		Int("active", m.Count()).
		Msg("WebSocket connection registered")

	return c
}

// Remove stops tracking a connection
func (m *Manager) Remove(id string) {
	if value, ok := m.connections.LoadAndDelete(id); ok {
		c := value.(*Connection)
		log.Debug().
			Str("connection_id", id).
			Int64("requests", c.Requests()).
			Dur("duration", time.Since(c.ConnectedAt)).
			Msg("WebSocket connection removed")
	}
}

// Get returns a tracked connection by id
func (m *Manager) Get(id string) (*Connection, bool) {
	value, ok := m.connections.Load(id)
	if !ok {
		return nil, false
	}
	return value.(*Connection), true
}

// Count returns the current number of active connections
func (m *Manager) Count() int {
	count := 0
	m.connections.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// CloseAll sends a close frame to every tracked connection, closes it and
// stops tracking it. It returns the number of connections closed.
func (m *Manager) CloseAll(reason string) int {
	timeouts := m.Timeouts()
	closed := 0

	m.connections.Range(func(key, value interface{}) bool {
		c := value.(*Connection)
		if c.Conn != nil {
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, reason)
			_ = c.Conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(timeouts.WriteWait))
			_ = c.Conn.Close()
		}
		m.connections.Delete(key)
		closed++
		return true
	})

	if closed > 0 {
		log.Info().Int("closed", closed).Str("reason", reason).Msg("Closed WebSocket connections")
	}

	return closed
}

// Timeouts returns the current timeout configuration
func (m *Manager) Timeouts() TimeoutConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.timeouts
}

// SetTimeouts updates the timeout configuration
func (m *Manager) SetTimeouts(timeouts TimeoutConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts = timeouts
}
