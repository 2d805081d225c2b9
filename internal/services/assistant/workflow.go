package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
	"github.com/changlade/intelligent-dashboard-demo/pkg/poll"
)

// Backend is the collaborator contract for the assistant service. All
// business-level failures come back as *models.BackendError; anything else
// is a transport failure.
type Backend interface {
	StartConversation(ctx context.Context, content string) (conversationID, messageID string, err error)
	ContinueConversation(ctx context.Context, conversationID, content string) (messageID string, err error)
	GetMessage(ctx context.Context, conversationID, messageID string) (models.ReplyPayload, error)
	GetQueryResult(ctx context.Context, conversationID, messageID, attachmentID string) (models.QueryResult, error)
}

var (
	// ErrEmptyMessage rejects a submission whose content is blank after
	// trimming. Nothing is rendered for it.
	ErrEmptyMessage = errors.New("assistant: empty message")

	// ErrBusy rejects a submission while another one is in flight.
	ErrBusy = errors.New("assistant: a submission is already in flight")
)

const (
	startFailureText = "Failed to start conversation"
	sendFailureText  = "Failed to send message"
)

// Workflow drives one conversation against the assistant backend: gate the
// input, start or continue the conversation, poll the reply, interpret it and
// render the outcome.
type Workflow struct {
	backend  Backend
	renderer Renderer
	session  *Session
	policy   poll.Policy
	clock    poll.Clock
}

type Option func(*Workflow)

// WithPolicy overrides the reply polling budget.
func WithPolicy(p poll.Policy) Option {
	return func(w *Workflow) { w.policy = p }
}

// WithClock swaps the wait between poll attempts, used by tests.
func WithClock(c poll.Clock) Option {
	return func(w *Workflow) { w.clock = c }
}

func NewWorkflow(backend Backend, renderer Renderer, opts ...Option) *Workflow {
	w := &Workflow{
		backend:  backend,
		renderer: renderer,
		session:  NewSession(),
		policy:   poll.Policy{MaxAttempts: 30, Interval: time.Second},
		clock:    poll.RealClock{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Session() *Session {
	return w.session
}

// Submit runs one full submission: it blocks until the reply resolves, fails
// or the poll budget runs out. Rejections (ErrEmptyMessage, ErrBusy) render
// nothing; any accepted submission releases the gate on every exit path.
func (w *Workflow) Submit(ctx context.Context, message string) error {
	content, err := w.accept(message)
	if err != nil {
		return err
	}
	return w.run(ctx, content)
}

// SubmitAsync validates and accepts the submission, then completes it in the
// background. The gate rejections are still reported synchronously.
func (w *Workflow) SubmitAsync(ctx context.Context, message string) error {
	content, err := w.accept(message)
	if err != nil {
		return err
	}
	go func() {
		_ = w.run(ctx, content)
	}()
	return nil
}

// Reset forgets the conversation and clears the rendered transcript.
func (w *Workflow) Reset() {
	w.session.Reset()
	if c, ok := w.renderer.(interface{ Clear() }); ok {
		c.Clear()
	}
	log.Info().Msg("Conversation reset")
}

func (w *Workflow) accept(message string) (string, error) {
	content := strings.TrimSpace(message)
	if content == "" {
		return "", ErrEmptyMessage
	}
	if !w.session.begin() {
		return "", ErrBusy
	}
	w.renderer.Append(models.NewUserEntry(content))
	return content, nil
}

func (w *Workflow) run(ctx context.Context, content string) error {
	defer w.session.end()

	if err := w.dispatch(ctx, content); err != nil {
		w.renderer.Append(models.NewErrorEntry(failureText(err)))
		return err
	}
	return nil
}

func (w *Workflow) dispatch(ctx context.Context, content string) error {
	conversationID := w.session.ConversationID()

	if conversationID == "" {
		convID, messageID, err := w.backend.StartConversation(ctx, content)
		if err != nil {
			return &submitFailure{display: startFailureText, err: err}
		}
		w.session.setConversationID(convID)
		log.Info().Str("conversation_id", convID).Msg("Conversation started")
		return w.pollForReply(ctx, convID, messageID)
	}

	// The conversation id is preserved even if a single follow-up fails.
	messageID, err := w.backend.ContinueConversation(ctx, conversationID, content)
	if err != nil {
		return &submitFailure{display: sendFailureText, err: err}
	}
	return w.pollForReply(ctx, conversationID, messageID)
}

// submitFailure pairs a dispatch error with the fixed fallback text rendered
// into the transcript when the backend supplied no error string of its own.
type submitFailure struct {
	display string
	err     error
}

func (f *submitFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.display, f.err)
}

func (f *submitFailure) Unwrap() error {
	return f.err
}

func failureText(err error) string {
	var backendErr *models.BackendError
	if errors.As(err, &backendErr) && backendErr.Message != "" {
		return backendErr.Message
	}
	var failure *submitFailure
	if errors.As(err, &failure) {
		return failure.display
	}
	return err.Error()
}
