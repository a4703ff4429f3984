package websocket

import (
	"testing"
	"time"

	"mindwell-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, noopLogger{})
	go h.Run()
	return h
}

func (h *Hub) connectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func TestHubDropsSlowClientWithoutPanic(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()

	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- client
	require.Eventually(t, func() bool {
		return h.connectionCount(userID) == 1
	}, time.Second, 5*time.Millisecond)

	// First delivery fills the buffer, the second finds it full and must
	// drop the connection cleanly instead of crashing the hub.
	h.Broadcast(model.Notification{ID: uuid.New(), UserID: userID})
	h.Broadcast(model.Notification{ID: uuid.New(), UserID: userID})

	require.Eventually(t, func() bool {
		return h.connectionCount(userID) == 0
	}, time.Second, 5*time.Millisecond)

	// The Send channel is closed exactly once by the unregister path;
	// draining the buffered message then reads the closed marker.
	<-client.Send
	_, open := <-client.Send
	require.False(t, open)

	// The hub goroutine survived and still serves new registrations.
	replacement := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- replacement
	require.Eventually(t, func() bool {
		return h.connectionCount(userID) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHubBroadcastWithTwoSlowClients(t *testing.T) {
	h := startHub(t)
	first := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 1)}
	second := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 1)}
	h.register <- first
	h.register <- second
	require.Eventually(t, func() bool {
		return h.connectionCount(first.UserID) == 1 && h.connectionCount(second.UserID) == 1
	}, time.Second, 5*time.Millisecond)

	h.Broadcast(model.Notification{ID: uuid.New()})

	// Both buffers are now full; a second broadcast drops both in one pass
	// and must not wedge the hub.
	done := make(chan struct{})
	go func() {
		h.Broadcast(model.Notification{ID: uuid.New()})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast deadlocked while dropping slow clients")
	}

	require.Eventually(t, func() bool {
		return h.connectionCount(first.UserID) == 0 && h.connectionCount(second.UserID) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestHubSendTargetsOnlyOneUser(t *testing.T) {
	h := startHub(t)
	alice := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 4)}
	bob := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 4)}
	h.register <- alice
	h.register <- bob
	require.Eventually(t, func() bool {
		return h.connectionCount(alice.UserID) == 1 && h.connectionCount(bob.UserID) == 1
	}, time.Second, 5*time.Millisecond)

	h.Send(alice.UserID, model.Notification{ID: uuid.New(), UserID: alice.UserID})

	select {
	case <-alice.Send:
	case <-time.After(time.Second):
		t.Fatal("expected a delivery for the targeted user")
	}
	require.Empty(t, bob.Send)
}
