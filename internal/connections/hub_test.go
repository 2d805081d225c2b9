package connections

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(DefaultTimeouts)
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Add(conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer conn.Close()

	// Wait for the server side to register the connection.
	deadline := time.Now().Add(time.Second)
	for hub.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.Count() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Count())
	}

	entry := models.NewUserEntry("show me revenue")
	hub.EntryAppended(entry)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if event.Type != EventAppend {
		t.Errorf("expected append event, got %s", event.Type)
	}
	if event.Entry == nil || event.Entry.ID != entry.ID {
		t.Errorf("unexpected event entry: %+v", event.Entry)
	}

	hub.EntryRemoved(entry.ID)
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if event.Type != EventRemove || event.ID != entry.ID {
		t.Errorf("unexpected remove event: %+v", event)
	}

	hub.LogCleared()
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if event.Type != EventReset {
		t.Errorf("expected reset event, got %s", event.Type)
	}
}

func TestHubRemove(t *testing.T) {
	hub := NewHub(DefaultTimeouts)
	if hub.Count() != 0 {
		t.Fatalf("expected empty hub, got %d", hub.Count())
	}
	// Removing an unknown connection is a no-op.
	hub.Remove(nil)
	if hub.Count() != 0 {
		t.Errorf("expected empty hub after no-op remove, got %d", hub.Count())
	}
}
