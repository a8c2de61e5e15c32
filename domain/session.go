package domain

import (
	"time"
)

// Session represents the persisted state of one in-progress conversation.
// Timestamps are UTC with second precision; that is the granularity the
// backing media round-trip.
type Session struct {
	SessionID     string    `json:"session_id"`
	OwnerID       string    `json:"owner_id"`
	OwnerName     string    `json:"owner_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	History       []string  `json:"conversation_history"`
	Record        Record    `json:"record"`
	CurrentStep   Step      `json:"current_step"`
	IsComplete    bool      `json:"is_complete"`
}

// AppendUser appends a user turn to the conversation history.
func (s *Session) AppendUser(utterance string) {
	s.History = append(s.History, "user: "+utterance)
}

// AppendAssistant appends an assistant turn to the conversation history.
func (s *Session) AppendAssistant(reply string) {
	s.History = append(s.History, "assistant: "+reply)
}

// RecentHistory returns the last n turns of the conversation history.
func (s *Session) RecentHistory(n int) []string {
	if n <= 0 || len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// ExpiredAt reports whether the session has been idle longer than the
// given timeout as of now.
func (s *Session) ExpiredAt(now time.Time, idleTimeout time.Duration) bool {
	if idleTimeout <= 0 {
		return false
	}
	return now.Sub(s.LastUpdatedAt) > idleTimeout
}

// Clone returns a deep copy of the session. The store hands out clones so
// callers never share cache pointers across turns.
func (s *Session) Clone() *Session {
	out := *s
	if s.History != nil {
		out.History = append([]string(nil), s.History...)
	}
	out.Record = s.Record.Clone()
	return &out
}
