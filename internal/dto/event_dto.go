package dto

import "github.com/google/uuid"

// TurnCompletedMessage is the event-bus payload published after every turn;
// the analytics consumer persists it out of the request path.
type TurnCompletedMessage struct {
	ChatSessionId uuid.UUID              `json:"chat_session_id"`
	Role          string                 `json:"role"`
	Query         string                 `json:"query"`
	QueryType     string                 `json:"query_type"`
	AnswerLen     int                    `json:"answer_len"`
	LatencyMs     int64                  `json:"latency_ms"`
	Success       bool                   `json:"success"`
	FallbackUsed  bool                   `json:"fallback_used"`
	Details       map[string]interface{} `json:"details,omitempty"`
}
