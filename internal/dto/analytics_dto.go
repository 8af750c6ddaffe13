package dto

import "time"

type EngagementStatsResponse struct {
	TotalTurns     int64     `json:"total_turns"`
	FallbackTurns  int64     `json:"fallback_turns"`
	FailedTurns    int64     `json:"failed_turns"`
	RecruiterTurns int64     `json:"recruiter_turns"`
	EngineerTurns  int64     `json:"engineer_turns"`
	VisitorTurns   int64     `json:"visitor_turns"`
	GeneratedAt    time.Time `json:"generated_at"`
}

type VisitorMessageResponse struct {
	Contact   string    `json:"contact"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
