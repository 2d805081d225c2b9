package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/infrastructure/genie"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/resultcache"
	"github.com/changlade/intelligent-dashboard-demo/pkg/httpext"
)

// exampleQuestions seed the empty conversation state in the frontend.
var exampleQuestions = []string{
	"What was the total revenue by country last month?",
	"Which product family sells best in hypermarkets?",
	"How many POS locations stock our water brands?",
}

// GenieHandler exposes the raw conversation API as proxy routes so the
// frontend never holds a workspace token.
type GenieHandler struct {
	genie *genie.Service
	cache *resultcache.Service
}

func NewGenieHandler(genieService *genie.Service, cache *resultcache.Service) *GenieHandler {
	return &GenieHandler{genie: genieService, cache: cache}
}

type messageRequest struct {
	Content string `json:"content"`
}

func (h *GenieHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	httpext.JsonSuccess(w, map[string]any{
		"configured":        h.genie.IsConfigured(),
		"space_id":          h.genie.SpaceID(),
		"space_url":         h.genie.SpaceURL(),
		"example_questions": exampleQuestions,
	})
}

func (h *GenieHandler) HandleStartConversation(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readContent(w, r)
	if !ok {
		return
	}

	payload, err := h.genie.StartConversationRaw(r.Context(), content)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpext.JsonSuccess(w, payload)
}

func (h *GenieHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readContent(w, r)
	if !ok {
		return
	}

	conversationID := mux.Vars(r)["conversationID"]
	payload, err := h.genie.ContinueConversationRaw(r.Context(), conversationID, content)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpext.JsonSuccess(w, payload)
}

func (h *GenieHandler) HandleGetMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	payload, err := h.genie.GetMessageRaw(r.Context(), vars["conversationID"], vars["messageID"])
	if err != nil {
		writeBackendError(w, err)
		return
	}
	httpext.JsonSuccess(w, payload)
}

// HandleGetQueryResult serves an attachment's query result, consulting the
// cache first since the frontend re-requests results while rendering.
func (h *GenieHandler) HandleGetQueryResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	conversationID := vars["conversationID"]
	messageID := vars["messageID"]
	attachmentID := vars["attachmentID"]

	key := h.cache.Key(conversationID, messageID, attachmentID)
	if payload := h.cache.Lookup(r.Context(), key); payload != nil {
		log.Debug().Str("key", key).Msg("Query result served from cache")
		httpext.JsonSuccess(w, payload)
		return
	}

	payload, err := h.genie.GetQueryResultRaw(r.Context(), conversationID, messageID, attachmentID)
	if err != nil {
		writeBackendError(w, err)
		return
	}

	h.cache.Put(r.Context(), key, payload)
	httpext.JsonSuccess(w, payload)
}

func (h *GenieHandler) readContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !h.genie.IsConfigured() {
		httpext.JsonError(w, "Assistant service is not configured", http.StatusServiceUnavailable)
		return "", false
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpext.JsonError(w, "Invalid request body", http.StatusBadRequest)
		return "", false
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		httpext.JsonError(w, "Content is required", http.StatusBadRequest)
		return "", false
	}
	return content, true
}

// writeBackendError maps upstream failures onto the response envelope.
// Business-level errors keep their message; transport errors get a generic one.
func writeBackendError(w http.ResponseWriter, err error) {
	var backendErr *models.BackendError
	if errors.As(err, &backendErr) {
		httpext.JsonError(w, backendErr.Message, http.StatusBadGateway)
		return
	}
	log.Error().Err(err).Msg("Assistant request failed")
	httpext.JsonError(w, "Assistant request failed", http.StatusBadGateway)
}
