package memory

import (
	"context"

	"persona-chat-be/pkg/store"
)

// SessionStore persists the session-scoped conversation state (persona,
// hiring-signal accumulator, offer flag) between turns. Implementations must
// tolerate unavailability: a miss just means the caller rebuilds the session.
type SessionStore interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, bool)
	Delete(ctx context.Context, sessionID string) error
}
