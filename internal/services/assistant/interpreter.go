package assistant

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

const (
	placeholderText = "Let me show you the results..."
	maxFollowUps    = 3
)

// interpret turns a COMPLETED reply into transcript entries: one text entry,
// one table entry per attachment with a statement, and at most one follow-up
// entry. Secondary fetch failures degrade gracefully: the text reply has
// already been shown, so a missing table or missing follow-ups is logged and
// skipped.
func (w *Workflow) interpret(ctx context.Context, conversationID, messageID string, reply models.ReplyPayload) {
	attachments := reply.Attachments()

	text := placeholderText
	if len(attachments) > 0 {
		if description := attachments[0].Description(); description != "" {
			text = description
		}
	}
	w.renderer.Append(models.NewAssistantEntry(text))

	for _, attachment := range attachments {
		if attachment.StatementID() == "" {
			continue
		}
		result, err := w.backend.GetQueryResult(ctx, conversationID, messageID, attachment.ResultID())
		if err != nil {
			log.Warn().
				Err(err).
				Str("conversation_id", conversationID).
				Str("attachment_id", attachment.ResultID()).
				Msg("Query result fetch failed, skipping table")
			continue
		}
		if html := RenderTable(result); html != "" {
			w.renderer.Append(models.NewTableEntry(html))
		}
	}

	if questions := followUpQuestions(reply); len(questions) > 0 {
		if len(questions) > maxFollowUps {
			questions = questions[:maxFollowUps]
		}
		w.renderer.Append(models.NewFollowUpEntry(questions))
	}
}

// followUpSource is one place follow-up suggestions have been observed in
// reply payloads. Sources are tried in order; the first present, non-empty
// candidate wins.
type followUpSource struct {
	name    string
	extract func(models.ReplyPayload) []any
}

func topLevelField(field string) func(models.ReplyPayload) []any {
	return func(p models.ReplyPayload) []any {
		return models.SliceAt(p, field)
	}
}

var followUpSources = []followUpSource{
	{"suggested_followups", topLevelField("suggested_followups")},
	{"followup_questions", topLevelField("followup_questions")},
	{"suggested_questions", topLevelField("suggested_questions")},
	{"attachments[0].suggested_followups", func(p models.ReplyPayload) []any {
		attachments := p.Attachments()
		if len(attachments) == 0 {
			return nil
		}
		return models.SliceAt(attachments[0], "suggested_followups")
	}},
}

func followUpQuestions(reply models.ReplyPayload) []string {
	for _, source := range followUpSources {
		items := source.extract(reply)
		if len(items) == 0 {
			continue
		}
		questions := make([]string, 0, len(items))
		for _, item := range items {
			if label := suggestionLabel(item); label != "" {
				questions = append(questions, label)
			}
		}
		if len(questions) > 0 {
			return questions
		}
	}
	return nil
}

// suggestionLabel extracts the question text from one suggestion item, which
// may be a plain string or an object exposing text, question or content.
func suggestionLabel(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		return strings.TrimSpace(models.FirstStringOf(v, "text", "question", "content"))
	default:
		return ""
	}
}
