package serving

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/changlade/intelligent-dashboard-demo/internal/config"
)

// Service talks to a Databricks model-serving endpoint. The endpoint speaks
// the chat completions wire format, so the OpenAI client is pointed at it
// with a custom base URL.
type Service struct {
	client *openai.Client
	model  string
}

func NewService() *Service {
	endpoint := config.GetServingEndpointURL()
	token := config.GetServingToken()

	if endpoint == "" || token == "" {
		log.Warn().Msg("Model serving endpoint not configured - AI recommendations will use fallback content")
		return nil
	}

	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = endpoint

	log.Info().Str("endpoint", endpoint).Msg("Model serving service initialised")
	return &Service{
		client: openai.NewClientWithConfig(cfg),
		model:  config.GetServingModel(),
	}
}

// Complete sends a single-turn prompt and returns the model's reply text.
func (s *Service) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("serving endpoint request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("serving endpoint returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
