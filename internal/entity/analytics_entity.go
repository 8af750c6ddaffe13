package entity

import (
	"time"

	"github.com/google/uuid"
)

// TurnAnalytics is the one record persisted per conversation turn.
type TurnAnalytics struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Query         string
	QueryType     string
	AnswerLen     int
	LatencyMs     int64
	Success       bool
	FallbackUsed  bool
	Details       map[string]interface{}
	CreatedAt     time.Time
}

// VisitorMessage is a private message a visitor left for the owner.
type VisitorMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Contact       string
	Body          string
	CreatedAt     time.Time
}
