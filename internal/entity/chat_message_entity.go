package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn half in a session transcript. Messages are
// immutable once created; there is no update operation.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Text          string
	IsAssistant   bool
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
