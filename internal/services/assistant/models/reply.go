package models

// Reply status values reported by the assistant service. Anything else is
// treated as non-terminal and polled again.
const (
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// ReplyPayload is the loosely structured body of one assistant reply. It is
// read-only from this system's perspective and deliberately kept as decoded
// JSON: the service has shipped several field layouts and the extraction
// chains pick through them in a fixed order.
type ReplyPayload map[string]any

func (p ReplyPayload) Status() string {
	status, _ := p["status"].(string)
	return status
}

func (p ReplyPayload) Attachments() []Attachment {
	raw, _ := p["attachments"].([]any)
	attachments := make([]Attachment, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			attachments = append(attachments, Attachment(m))
		}
	}
	return attachments
}

// Attachment is one element of a reply's attachments sequence.
type Attachment map[string]any

// Description returns the attachment's query description, the preferred
// display text for the reply.
func (a Attachment) Description() string {
	return StringAt(a, "query", "description")
}

// StatementID reports the SQL statement backing this attachment, if any.
// Attachments without one carry no tabular result.
func (a Attachment) StatementID() string {
	return StringAt(a, "query", "statement_id")
}

// ResultID returns the identifier used to fetch the attachment's query
// result, preferring attachment_id over the older id field.
func (a Attachment) ResultID() string {
	return FirstStringOf(a, "attachment_id", "id")
}

// QueryResult is the loosely structured result of one executed statement.
type QueryResult map[string]any

// BackendError is a business-level failure the assistant service reported,
// as opposed to a transport failure reaching it.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}
