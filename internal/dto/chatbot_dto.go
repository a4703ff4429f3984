package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title string `json:"title" validate:"omitempty,max=120"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type ChatMessageResponse struct {
	Id          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	IsAssistant bool      `json:"is_assistant"`
	CreatedAt   time.Time `json:"created_at"`
}

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// Source reports which path produced the reply: "assistant" when the
// remote provider answered, "fallback" when the keyword responder did.
type SendChatResponse struct {
	Sent   ChatMessageResponse `json:"sent"`
	Reply  ChatMessageResponse `json:"reply"`
	Source string              `json:"source"`
}
