package assistant

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
	"github.com/changlade/intelligent-dashboard-demo/pkg/poll"
)

const (
	thinkingText        = "Thinking..."
	processingErrorText = "Sorry, I encountered an error processing your request."
	timeoutErrorText    = "Request timed out. Please try again."
)

type pollOutcome int

const (
	outcomePending pollOutcome = iota
	outcomeCompleted
	outcomeFailed
)

// pollForReply waits for the reply to (conversationID, messageID) to reach a
// terminal status. Exactly one terminal outcome renders, and the loading
// entry is always removed before the terminal entry is appended. A failed
// status fetch is a soft retry: it consumes an attempt and is never surfaced
// on its own.
func (w *Workflow) pollForReply(ctx context.Context, conversationID, messageID string) error {
	loading := models.NewLoadingEntry(thinkingText)
	w.renderer.Append(loading)

	outcome := outcomePending
	var reply models.ReplyPayload

	err := poll.Run(ctx, w.policy, w.clock, func(ctx context.Context) (bool, error) {
		payload, err := w.backend.GetMessage(ctx, conversationID, messageID)
		if err != nil {
			log.Warn().
				Err(err).
				Str("conversation_id", conversationID).
				Str("message_id", messageID).
				Msg("Reply status fetch failed, retrying")
			return false, err
		}

		switch payload.Status() {
		case models.StatusCompleted:
			outcome = outcomeCompleted
			reply = payload
			return true, nil
		case models.StatusFailed:
			outcome = outcomeFailed
			return true, nil
		default:
			return false, nil
		}
	})

	w.renderer.Remove(loading.ID)

	switch outcome {
	case outcomeCompleted:
		w.interpret(ctx, conversationID, messageID, reply)
		return nil
	case outcomeFailed:
		w.renderer.Append(models.NewErrorEntry(processingErrorText))
		return nil
	default:
		if err != nil && ctx.Err() != nil {
			// Cancelled mid-poll; the caller owns this outcome.
			return err
		}
		w.renderer.Append(models.NewErrorEntry(timeoutErrorText))
		return nil
	}
}
