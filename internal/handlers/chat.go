package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant"
	"github.com/changlade/intelligent-dashboard-demo/pkg/httpext"
)

// ChatHandler runs the managed conversation workflow: submissions are
// accepted synchronously and resolved in the background, with the transcript
// available over HTTP and streamed over the websocket.
type ChatHandler struct {
	workflow *assistant.Workflow
	log      *assistant.MessageLog
}

func NewChatHandler(workflow *assistant.Workflow, log *assistant.MessageLog) *ChatHandler {
	return &ChatHandler{workflow: workflow, log: log}
}

func (h *ChatHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// The submission outlives this request, so it must not carry the
	// request's cancellation.
	err := h.workflow.SubmitAsync(context.Background(), req.Content)
	switch {
	case errors.Is(err, assistant.ErrEmptyMessage):
		httpext.JsonError(w, "Content is required", http.StatusBadRequest)
	case errors.Is(err, assistant.ErrBusy):
		httpext.JsonError(w, "A message is already being processed", http.StatusConflict)
	case err != nil:
		httpext.JsonError(w, "Failed to accept message", http.StatusInternalServerError)
	default:
		httpext.JsonAccepted(w, map[string]any{"accepted": true})
	}
}

func (h *ChatHandler) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	session := h.workflow.Session()
	httpext.JsonSuccess(w, map[string]any{
		"entries":         h.log.Entries(),
		"processing":      session.Processing(),
		"conversation_id": session.ConversationID(),
	})
}

func (h *ChatHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.workflow.Reset()
	httpext.JsonSuccess(w, map[string]any{"reset": true})
}
