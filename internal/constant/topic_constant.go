package constant

// Event bus topics.
const (
	TopicTurnCompleted = "CHAT_TURN_COMPLETED"
)
