package connections

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

// TimeoutConfig holds the timeout settings for transcript connections.
type TimeoutConfig struct {
	WriteWait time.Duration
}

// DefaultTimeouts provides sensible default timeout values
var DefaultTimeouts = TimeoutConfig{
	WriteWait: 10 * time.Second,
}

// Event is one transcript change pushed to subscribers.
type Event struct {
	Type  string               `json:"type"`
	Entry *models.MessageEntry `json:"entry,omitempty"`
	ID    string               `json:"id,omitempty"`
}

const (
	EventAppend = "append"
	EventRemove = "remove"
	EventReset  = "reset"
)

// Hub fans transcript events out to connected websocket clients. It
// implements the message log's listener contract.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	timeouts TimeoutConfig
}

func NewHub(timeouts TimeoutConfig) *Hub {
	return &Hub{
		conns:    make(map[*websocket.Conn]struct{}),
		timeouts: timeouts,
	}
}

// Add registers a new subscriber connection.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Remove unregisters a subscriber connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Count returns the current number of subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends an event to every subscriber. Connections that fail to
// accept the write are dropped.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(h.timeouts.WriteWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Warn().Err(err).Msg("Dropping transcript subscriber after failed write")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// EntryAppended implements the transcript listener contract.
func (h *Hub) EntryAppended(entry models.MessageEntry) {
	h.Broadcast(Event{Type: EventAppend, Entry: &entry})
}

// EntryRemoved implements the transcript listener contract.
func (h *Hub) EntryRemoved(id string) {
	h.Broadcast(Event{Type: EventRemove, ID: id})
}

// LogCleared implements the transcript listener contract.
func (h *Hub) LogCleared() {
	h.Broadcast(Event{Type: EventReset})
}
