package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mindwell-be/pkg/assistant"
)

func TestReplySuccess(t *testing.T) {
	var gotBody struct {
		Message             string `json:"message"`
		ConversationHistory []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"conversationHistory"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"reply": "I hear you."})
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, "test-key", 5*time.Second)
	history := []assistant.Message{
		{Role: assistant.RoleUser, Content: "hi"},
		{Role: assistant.RoleAssistant, Content: "hello"},
	}

	reply, err := p.Reply(context.Background(), history, "how are you?")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if reply != "I hear you." {
		t.Errorf("reply = %q, want %q", reply, "I hear you.")
	}

	if gotBody.Message != "how are you?" {
		t.Errorf("message = %q, want new user text", gotBody.Message)
	}
	if len(gotBody.ConversationHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(gotBody.ConversationHistory))
	}
	if gotBody.ConversationHistory[1].Role != "assistant" {
		t.Errorf("history[1].role = %q, want assistant", gotBody.ConversationHistory[1].Role)
	}
}

func TestReplyModelOption(t *testing.T) {
	var gotBody map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"reply": "ok"})
	}))
	defer srv.Close()

	p := NewRemoteProvider(srv.URL, "k", 5*time.Second)

	if _, err := p.Reply(context.Background(), nil, "hi", assistant.WithModel("wellness-v2")); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if got := string(gotBody["model"]); got != `"wellness-v2"` {
		t.Errorf("model = %s, want %q", got, "wellness-v2")
	}

	gotBody = nil
	if _, err := p.Reply(context.Background(), nil, "hi"); err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if _, present := gotBody["model"]; present {
		t.Error("model field sent without the option")
	}
}

func TestReplyFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
		{
			name: "missing reply field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"answer": "wrong shape"})
			},
		},
		{
			name: "empty reply field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]string{"reply": "   "})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := NewRemoteProvider(srv.URL, "k", 5*time.Second)
			_, err := p.Reply(context.Background(), nil, "hello")
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReplyTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	p := NewRemoteProvider(srv.URL, "k", 2*time.Second)
	_, err := p.Reply(context.Background(), nil, "hello")
	if err == nil {
		t.Error("expected transport error, got nil")
	}
}
