package genie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/config"
	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

// Service is the HTTP client for the Genie conversation API. It implements
// the assistant workflow's backend contract and also exposes the raw payloads
// for the proxy routes.
type Service struct {
	client       *http.Client
	resultClient *http.Client
	instanceURL  string
	spaceID      string
	token        string
	apiBase      string
}

func NewService() *Service {
	s := &Service{
		// Query results can take noticeably longer than status checks.
		client:       &http.Client{Timeout: 30 * time.Second},
		resultClient: &http.Client{Timeout: 60 * time.Second},
		instanceURL:  config.GetGenieInstanceURL(),
		spaceID:      config.GetGenieSpaceID(),
		token:        config.GetGenieToken(),
		apiBase:      config.GetGenieAPIBase(),
	}

	if !s.IsConfigured() {
		log.Warn().Msg("Genie service is not fully configured - assistant routes will be unavailable")
	} else {
		log.Info().Str("space_id", s.spaceID).Msg("Genie service initialised")
	}

	return s
}

func (s *Service) IsConfigured() bool {
	return s.instanceURL != "" && s.spaceID != "" && s.token != ""
}

// SpaceID returns the configured Genie space id.
func (s *Service) SpaceID() string {
	return s.spaceID
}

// InstanceURL returns the configured workspace URL.
func (s *Service) InstanceURL() string {
	return s.instanceURL
}

// SpaceURL returns the browser URL of the Genie space.
func (s *Service) SpaceURL() string {
	return fmt.Sprintf("%s/genie/rooms/%s", s.instanceURL, s.spaceID)
}

func (s *Service) spaceEndpoint(path string) string {
	return fmt.Sprintf("%s%s/spaces/%s%s", s.instanceURL, s.apiBase, s.spaceID, path)
}

// StartConversationRaw opens a new conversation with the given content and
// returns the upstream payload untouched.
func (s *Service) StartConversationRaw(ctx context.Context, content string) (map[string]any, error) {
	return s.doJSON(ctx, s.client, http.MethodPost, s.spaceEndpoint("/start-conversation"), map[string]string{"content": content})
}

// ContinueConversationRaw sends a follow-up message in an existing conversation.
func (s *Service) ContinueConversationRaw(ctx context.Context, conversationID, content string) (map[string]any, error) {
	url := s.spaceEndpoint(fmt.Sprintf("/conversations/%s/messages", conversationID))
	return s.doJSON(ctx, s.client, http.MethodPost, url, map[string]string{"content": content})
}

// GetMessageRaw fetches the current state of one conversation message.
func (s *Service) GetMessageRaw(ctx context.Context, conversationID, messageID string) (map[string]any, error) {
	url := s.spaceEndpoint(fmt.Sprintf("/conversations/%s/messages/%s", conversationID, messageID))
	return s.doJSON(ctx, s.client, http.MethodGet, url, nil)
}

// GetQueryResultRaw fetches the query result of one message attachment.
func (s *Service) GetQueryResultRaw(ctx context.Context, conversationID, messageID, attachmentID string) (map[string]any, error) {
	url := s.spaceEndpoint(fmt.Sprintf("/conversations/%s/messages/%s/query-result/%s", conversationID, messageID, attachmentID))
	return s.doJSON(ctx, s.resultClient, http.MethodGet, url, nil)
}

// StartConversation implements the workflow backend contract.
func (s *Service) StartConversation(ctx context.Context, content string) (string, string, error) {
	payload, err := s.StartConversationRaw(ctx, content)
	if err != nil {
		return "", "", err
	}

	conversationID := models.StringAt(payload, "conversation_id")
	if conversationID == "" {
		conversationID = models.StringAt(payload, "conversation", "id")
	}
	messageID := messageIDFrom(payload)

	if conversationID == "" || messageID == "" {
		return "", "", &models.BackendError{Message: "Assistant response is missing conversation identifiers"}
	}
	return conversationID, messageID, nil
}

// ContinueConversation implements the workflow backend contract.
func (s *Service) ContinueConversation(ctx context.Context, conversationID, content string) (string, error) {
	payload, err := s.ContinueConversationRaw(ctx, conversationID, content)
	if err != nil {
		return "", err
	}

	messageID := messageIDFrom(payload)
	if messageID == "" {
		return "", &models.BackendError{Message: "Assistant response is missing a message identifier"}
	}
	return messageID, nil
}

// GetMessage implements the workflow backend contract.
func (s *Service) GetMessage(ctx context.Context, conversationID, messageID string) (models.ReplyPayload, error) {
	payload, err := s.GetMessageRaw(ctx, conversationID, messageID)
	if err != nil {
		return nil, err
	}
	return models.ReplyPayload(payload), nil
}

// GetQueryResult implements the workflow backend contract.
func (s *Service) GetQueryResult(ctx context.Context, conversationID, messageID, attachmentID string) (models.QueryResult, error) {
	payload, err := s.GetQueryResultRaw(ctx, conversationID, messageID, attachmentID)
	if err != nil {
		return nil, err
	}
	return models.QueryResult(payload), nil
}

func messageIDFrom(payload map[string]any) string {
	if id := models.StringAt(payload, "message_id"); id != "" {
		return id
	}
	return models.StringAt(payload, "message", "id")
}

func (s *Service) doJSON(ctx context.Context, client *http.Client, method, url string, body any) (map[string]any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach assistant API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error().
			Int("status", resp.StatusCode).
			Str("url", url).
			Str("body", string(detail)).
			Msg("Assistant API returned non-200 status")
		return nil, &models.BackendError{Message: fmt.Sprintf("Genie API error: %d", resp.StatusCode)}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode assistant response: %w", err)
	}
	return payload, nil
}
