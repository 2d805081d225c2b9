package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/changlade/intelligent-dashboard-demo/internal/services/assistant/models"
)

func TestInterpretUsesAttachmentDescription(t *testing.T) {
	log := NewMessageLog()
	w := testWorkflow(&fakeBackend{}, log)

	reply := completedReply(map[string]any{
		"attachments": []any{
			map[string]any{
				"query": map[string]any{"description": "Here is the revenue split by country."},
			},
		},
	})
	w.interpret(context.Background(), "conv-1", "msg-1", reply)

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected a single text entry, got %d", len(entries))
	}
	if entries[0].Text != "Here is the revenue split by country." {
		t.Errorf("unexpected text: %q", entries[0].Text)
	}
}

func TestInterpretFallsBackToPlaceholder(t *testing.T) {
	log := NewMessageLog()
	w := testWorkflow(&fakeBackend{}, log)

	w.interpret(context.Background(), "conv-1", "msg-1", completedReply(nil))

	entries := log.Entries()
	if len(entries) != 1 || entries[0].Text != placeholderText {
		t.Fatalf("expected the placeholder text, got %+v", entries)
	}
}

func TestInterpretRendersTablePerAttachment(t *testing.T) {
	log := NewMessageLog()
	requested := []string{}
	backend := &fakeBackend{
		queryResult: func(ctx context.Context, conversationID, messageID, attachmentID string) (models.QueryResult, error) {
			requested = append(requested, attachmentID)
			return models.QueryResult{
				"data_array": []any{[]any{"value"}},
			}, nil
		},
	}
	w := testWorkflow(backend, log)

	reply := completedReply(map[string]any{
		"attachments": []any{
			map[string]any{
				"attachment_id": "att-1",
				"query":         map[string]any{"statement_id": "stmt-1"},
			},
			// No statement: nothing to fetch for this one.
			map[string]any{
				"attachment_id": "att-2",
				"text":          map[string]any{"content": "just text"},
			},
			// Identifier falls back to the id field.
			map[string]any{
				"id":    "att-3",
				"query": map[string]any{"statement_id": "stmt-3"},
			},
		},
	})
	w.interpret(context.Background(), "conv-1", "msg-1", reply)

	if len(requested) != 2 || requested[0] != "att-1" || requested[1] != "att-3" {
		t.Fatalf("unexpected query result fetches: %v", requested)
	}

	tables := 0
	for _, entry := range log.Entries() {
		if entry.TableHTML != "" {
			tables++
		}
	}
	if tables != 2 {
		t.Errorf("expected 2 table entries, got %d", tables)
	}
}

func TestInterpretSkipsFailedQueryResult(t *testing.T) {
	log := NewMessageLog()
	backend := &fakeBackend{
		queryResult: func(ctx context.Context, conversationID, messageID, attachmentID string) (models.QueryResult, error) {
			return nil, errors.New("result fetch failed")
		},
	}
	w := testWorkflow(backend, log)

	reply := completedReply(map[string]any{
		"attachments": []any{
			map[string]any{
				"attachment_id": "att-1",
				"query": map[string]any{
					"description":  "Revenue by product.",
					"statement_id": "stmt-1",
				},
			},
		},
	})
	w.interpret(context.Background(), "conv-1", "msg-1", reply)

	entries := log.Entries()
	if len(entries) != 1 {
		t.Fatalf("a failed result fetch must only drop the table, got %+v", entries)
	}
	if entries[0].Text != "Revenue by product." {
		t.Errorf("the text reply must still render, got %q", entries[0].Text)
	}
	for _, entry := range entries {
		if entry.Role == models.RoleError {
			t.Errorf("no error entry may render for a missing table: %+v", entry)
		}
	}
}

func TestFollowUpSourcePrecedence(t *testing.T) {
	reply := completedReply(map[string]any{
		"followup_questions":  []any{"From followup_questions"},
		"suggested_questions": []any{"From suggested_questions"},
	})

	questions := followUpQuestions(reply)
	if len(questions) != 1 || questions[0] != "From followup_questions" {
		t.Fatalf("expected followup_questions to win, got %v", questions)
	}
}

func TestFollowUpAttachmentFallback(t *testing.T) {
	reply := completedReply(map[string]any{
		"attachments": []any{
			map[string]any{
				"suggested_followups": []any{"From the attachment"},
			},
		},
	})

	questions := followUpQuestions(reply)
	if len(questions) != 1 || questions[0] != "From the attachment" {
		t.Fatalf("expected the attachment fallback, got %v", questions)
	}
}

func TestFollowUpsCappedAtThree(t *testing.T) {
	log := NewMessageLog()
	w := testWorkflow(&fakeBackend{}, log)

	reply := completedReply(map[string]any{
		"suggested_followups": []any{"Q1", "Q2", "Q3", "Q4", "Q5"},
	})
	w.interpret(context.Background(), "conv-1", "msg-1", reply)

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected text + follow-up entries, got %d", len(entries))
	}
	followUps := entries[1].FollowUps
	if len(followUps) != 3 {
		t.Fatalf("expected 3 follow-ups, got %v", followUps)
	}
	for i, want := range []string{"Q1", "Q2", "Q3"} {
		if followUps[i] != want {
			t.Errorf("expected follow-up %d to be %s, got %s", i, want, followUps[i])
		}
	}
}

func TestSuggestionLabelVariants(t *testing.T) {
	tests := []struct {
		name string
		item any
		want string
	}{
		{"plain string", "What about France?", "What about France?"},
		{"text field", map[string]any{"text": "From text"}, "From text"},
		{"question field", map[string]any{"question": "From question"}, "From question"},
		{"content field", map[string]any{"content": "From content"}, "From content"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"unusable item", 42, ""},
		{"empty object", map[string]any{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggestionLabel(tt.item); got != tt.want {
				t.Errorf("suggestionLabel(%v) = %q, want %q", tt.item, got, tt.want)
			}
		})
	}
}

func TestFollowUpSkipsUnusableItems(t *testing.T) {
	reply := completedReply(map[string]any{
		"suggested_followups": []any{42, "", "Usable question"},
	})

	questions := followUpQuestions(reply)
	if len(questions) != 1 || !strings.Contains(questions[0], "Usable") {
		t.Fatalf("expected only the usable label, got %v", questions)
	}
}
