package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mindwell-be/pkg/assistant"
)

// RemoteProvider talks to the hosted chat-completion endpoint over HTTP.
type RemoteProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// Ensure RemoteProvider implements Provider
var _ assistant.Provider = &RemoteProvider{}

// NewRemoteProvider builds a provider against the given endpoint. The
// timeout bounds the whole call so a hung upstream still resolves into the
// fallback path instead of leaving a turn unanswered.
func NewRemoteProvider(baseURL, apiKey string, timeout time.Duration) *RemoteProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []chatMessage `json:"conversationHistory"`
	Model               string        `json:"model,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// --- Interface Implementation ---

func (p *RemoteProvider) Reply(ctx context.Context, history []assistant.Message, userMessage string, opts ...assistant.Option) (string, error) {
	options := &assistant.Options{}
	for _, opt := range opts {
		opt(options)
	}

	// Map generic messages to the wire shape
	wireHistory := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role != assistant.RoleUser && role != assistant.RoleAssistant {
			role = assistant.RoleUser
		}
		wireHistory[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	reqPayload := chatRequest{
		Message:             userMessage,
		ConversationHistory: wireHistory,
		Model:               options.Model,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("assistant error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	// An empty reply field counts as a malformed payload
	if strings.TrimSpace(chatResp.Reply) == "" {
		return "", fmt.Errorf("assistant response missing reply field")
	}

	return chatResp.Reply, nil
}
