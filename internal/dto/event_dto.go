package dto

import "github.com/google/uuid"

// PublishPostScanMessage is the payload queued for the content-safety
// scanner after a post is created or edited.
type PublishPostScanMessage struct {
	PostId uuid.UUID `json:"post_id"`
}
