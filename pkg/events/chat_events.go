package events

import "time"

const (
	TypeTurnCompleted      = "TURN_COMPLETED"
	TypeResourceRequested  = "RESOURCE_REQUESTED"
	TypeVisitorMessageLeft = "VISITOR_MESSAGE_LEFT"
)

// NewTurnCompleted records one finished conversation turn for the analytics
// consumers.
func NewTurnCompleted(sessionID, role, queryType string, latencyMs int64, fallbackUsed bool, actionsPlanned int) Event {
	return BaseEvent{
		Type: TypeTurnCompleted,
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"role":            role,
			"query_type":      queryType,
			"latency_ms":      latencyMs,
			"fallback_used":   fallbackUsed,
			"actions_planned": actionsPlanned,
		},
		OccurredAt: time.Now(),
	}
}

// NewResourceRequested marks an explicit resume/resource request.
func NewResourceRequested(sessionID, role, contact string) Event {
	return BaseEvent{
		Type: TypeResourceRequested,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"role":       role,
			"contact":    contact,
		},
		OccurredAt: time.Now(),
	}
}

// NewVisitorMessageLeft marks a message a visitor left for the owner.
func NewVisitorMessageLeft(sessionID, contact string) Event {
	return BaseEvent{
		Type: TypeVisitorMessageLeft,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"contact":    contact,
		},
		OccurredAt: time.Now(),
	}
}
