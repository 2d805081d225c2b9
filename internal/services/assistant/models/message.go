package models

import "github.com/google/uuid"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// MessageEntry is one rendered unit in the conversation transcript. An entry
// carries exactly one kind of content: plain text, a rendered table, or a
// group of follow-up questions.
type MessageEntry struct {
	ID        string   `json:"id"`
	Role      Role     `json:"role"`
	Text      string   `json:"text,omitempty"`
	TableHTML string   `json:"table_html,omitempty"`
	FollowUps []string `json:"follow_ups,omitempty"`
	Loading   bool     `json:"loading,omitempty"`
}

func newEntry(role Role) MessageEntry {
	return MessageEntry{ID: uuid.New().String(), Role: role}
}

func NewUserEntry(text string) MessageEntry {
	e := newEntry(RoleUser)
	e.Text = text
	return e
}

func NewAssistantEntry(text string) MessageEntry {
	e := newEntry(RoleAssistant)
	e.Text = text
	return e
}

func NewErrorEntry(text string) MessageEntry {
	e := newEntry(RoleError)
	e.Text = text
	return e
}

// NewLoadingEntry creates the transient entry shown while a reply is pending.
// It is removed, not replaced, once a terminal result is available.
func NewLoadingEntry(text string) MessageEntry {
	e := newEntry(RoleAssistant)
	e.Text = text
	e.Loading = true
	return e
}

func NewTableEntry(html string) MessageEntry {
	e := newEntry(RoleAssistant)
	e.TableHTML = html
	return e
}

func NewFollowUpEntry(questions []string) MessageEntry {
	e := newEntry(RoleAssistant)
	e.FollowUps = questions
	return e
}
