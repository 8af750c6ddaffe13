package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Role string `json:"role" validate:"required,oneof=recruiter engineer visitor"`
}

type CreateSessionResponse struct {
	Id   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Role      string     `json:"role"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"` // speaker: user | model
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required,max=4000"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type PlannedActionDTO struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

type SendChatResponse struct {
	ChatSessionId uuid.UUID             `json:"chat_session_id"`
	Sent          *SendChatResponseChat `json:"sent"`
	Reply         *SendChatResponseChat `json:"reply"`
	QueryType     string                `json:"query_type,omitempty"`
	FallbackUsed  bool                  `json:"fallback_used,omitempty"`
	Actions       []PlannedActionDTO    `json:"actions,omitempty"`
}

type SwitchRoleRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Role          string    `json:"role" validate:"required,oneof=recruiter engineer visitor"`
}
