package assistant

import "sync"

// Session holds the conversation state for one workflow. An empty
// conversation id means the next submission starts a new conversation;
// processing guards against concurrent submissions.
type Session struct {
	mu             sync.Mutex
	conversationID string
	processing     bool
}

func NewSession() *Session {
	return &Session{}
}

// begin marks a submission in flight. It reports false if one already is.
func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing {
		return false
	}
	s.processing = true
	return true
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processing = false
}

func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Session) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

func (s *Session) setConversationID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversationID = id
}

// Reset forgets the current conversation. The next submission starts a new one.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversationID = ""
}
