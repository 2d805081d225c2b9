package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/connections"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is already open to any origin via the CORS middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TranscriptHandler streams transcript changes to websocket clients. New
// subscribers get the current transcript replayed before live events.
type TranscriptHandler struct {
	hub *connections.Hub
	log *assistant.MessageLog
}

func NewTranscriptHandler(hub *connections.Hub, log *assistant.MessageLog) *TranscriptHandler {
	return &TranscriptHandler{hub: hub, log: log}
}

func (h *TranscriptHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}

	for _, entry := range h.log.Entries() {
		e := entry
		if err := conn.WriteJSON(connections.Event{Type: connections.EventAppend, Entry: &e}); err != nil {
			log.Warn().Err(err).Msg("Transcript replay failed")
			conn.Close()
			return
		}
	}

	h.hub.Add(conn)
	log.Info().Int("subscribers", h.hub.Count()).Msg("Transcript subscriber connected")

	// Drain the connection until the client goes away. Clients never send
	// payloads; reads only surface close and ping/pong handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.hub.Remove(conn)
	conn.Close()
	log.Info().Int("subscribers", h.hub.Count()).Msg("Transcript subscriber disconnected")
}
