package constant

const (
	// PostScanTopicName is the in-process queue topic for the content
	// safety scanner.
	PostScanTopicName = "POST_SAFETY_SCAN"
)

// Event type codes published on the NATS bus.
const (
	EventPostFlagged    = "POST_FLAGGED"
	EventPostLiked      = "POST_LIKED"
	EventCommentCreated = "COMMENT_CREATED"
	EventUserRegistered = "USER_REGISTERED"
)
