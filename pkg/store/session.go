package store

import "time"

// Session is the session-scoped state that survives across turns: the persona,
// the hiring-signal accumulator, and the one-per-session offer flag. It is
// loaded at the start of every turn and persisted at the end; nothing else
// survives between requests.
type Session struct {
	ID   string `json:"id"` // ChatSessionID
	Role string `json:"role"`

	// Hiring-signal accumulator: counts per signal kind, incremented by at
	// most 1 per kind per turn, never reset within a session.
	SignalCounts map[string]int `json:"signal_counts"`

	// Set once the subtle resource offer has been surfaced this session.
	ResourceOfferMade bool `json:"resource_offer_made"`

	LastQuery string    `json:"last_query"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates the session-scoped state for a freshly opened session.
func NewSession(id, role string) *Session {
	return &Session{
		ID:           id,
		Role:         role,
		SignalCounts: make(map[string]int),
	}
}

// DistinctSignalKinds counts how many different signal kinds have been
// observed at least once this session.
func (s *Session) DistinctSignalKinds() int {
	n := 0
	for _, c := range s.SignalCounts {
		if c > 0 {
			n++
		}
	}
	return n
}
