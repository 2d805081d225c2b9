package assistant

import (
	"sync"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

// Renderer is the display surface the workflow writes to. The workflow never
// depends on a concrete surface, only on append and remove.
type Renderer interface {
	Append(entry models.MessageEntry)
	Remove(id string)
}

// LogListener observes transcript changes, e.g. to mirror them to connected
// websocket clients.
type LogListener interface {
	EntryAppended(entry models.MessageEntry)
	EntryRemoved(id string)
	LogCleared()
}

// MessageLog is the in-memory transcript. Entries are ordered; removal by id
// is idempotent.
type MessageLog struct {
	mu        sync.RWMutex
	entries   []models.MessageEntry
	listeners []LogListener
}

func NewMessageLog(listeners ...LogListener) *MessageLog {
	return &MessageLog{listeners: listeners}
}

func (l *MessageLog) Append(entry models.MessageEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	for _, listener := range l.listeners {
		listener.EntryAppended(entry)
	}
}

func (l *MessageLog) Remove(id string) {
	l.mu.Lock()
	removed := false
	for i, entry := range l.entries {
		if entry.ID == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			removed = true
			break
		}
	}
	l.mu.Unlock()

	if !removed {
		return
	}
	for _, listener := range l.listeners {
		listener.EntryRemoved(id)
	}
}

// Clear drops every entry, returning the log to its empty state.
func (l *MessageLog) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()

	for _, listener := range l.listeners {
		listener.LogCleared()
	}
}

// Entries returns a copy of the current transcript in render order.
func (l *MessageLog) Entries() []models.MessageEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]models.MessageEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *MessageLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
