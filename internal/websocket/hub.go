package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"mindwell-be/internal/model"
	"mindwell-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fanoutChannel is the Redis pub/sub channel shared by all instances.
const fanoutChannel = "mindwell_ws_events"

// Hub tracks live WebSocket connections per user. A user can have several
// connections at once (multiple tabs or devices). With Redis configured,
// deliveries are relayed across instances through a pub/sub channel.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("hub", "client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a notification to every connected client.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	var stale []*Client
	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			if !h.push(client, data) {
				stale = append(stale, client)
			}
		}
	}
	h.mu.RUnlock()
	h.drop(stale)

	h.relay("*", data)
}

// Send delivers a notification to all of one user's connections. Implements
// service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	var stale []*Client
	h.mu.RLock()
	for _, client := range h.clients[userID] {
		if !h.push(client, data) {
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()
	h.drop(stale)

	// Other instances may hold connections for the same user
	h.relay(userID.String(), data)
}

// push tries a non-blocking delivery and reports whether it landed.
func (h *Hub) push(client *Client, data []byte) bool {
	select {
	case client.Send <- data:
		return true
	default:
		return false
	}
}

// drop hands slow clients to the unregister path, which owns the single
// close of the Send channel. Must be called without holding h.mu, the
// unregister case needs the write lock.
func (h *Hub) drop(stale []*Client) {
	for _, client := range stale {
		h.logger.Warn("hub", "client send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		h.unregister <- client
	}
}

func (h *Hub) relay(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        data,
	})
	h.rdb.Publish(context.Background(), fanoutChannel, payload)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("hub", "bad relay payload", map[string]interface{}{"error": err.Error()})
			continue
		}

		var stale []*Client
		if payload.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					if !h.push(client, payload.Message) {
						stale = append(stale, client)
					}
				}
			}
			h.mu.RUnlock()
			h.drop(stale)
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		for _, client := range h.clients[uid] {
			if !h.push(client, payload.Message) {
				stale = append(stale, client)
			}
		}
		h.mu.RUnlock()
		h.drop(stale)
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}
