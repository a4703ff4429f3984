package constant

const (
	// DefaultSessionTitle is used when a session is created without a title.
	DefaultSessionTitle = "New Conversation"

	// ChatHistoryLimit caps how many prior messages are sent to the remote
	// assistant per turn.
	ChatHistoryLimit = 50
)

const (
	ReplySourceAssistant = "assistant"
	ReplySourceFallback  = "fallback"
)
