package assistant

import (
	"context"
)

// Message represents one turn of conversation history in a
// provider-agnostic format.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Option allows optional parameters like Timeout overrides.
type Option func(*Options)

type Options struct {
	Model string // Override default model
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for the remote assistant backend.
//
// Implementations are expected to be unreliable: the caller treats any
// returned error (transport, HTTP status, malformed payload) as a signal to
// fall back to the local responder.
type Provider interface {
	// Reply sends the prior conversation history plus the new user message
	// and returns the assistant's reply text.
	Reply(ctx context.Context, history []Message, userMessage string, options ...Option) (string, error)
}
