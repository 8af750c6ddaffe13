package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"persona-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// alertChannel is the Redis pub/sub channel carrying alerts across instances.
const alertChannel = "chat_alerts"

// Alert is one live notification pushed to the owner's dashboard sockets.
type Alert struct {
	Reason    string    `json:"reason"`
	Detail    string    `json:"detail"`
	SessionID string    `json:"session_id,omitempty"`
	At        time.Time `json:"at"`
}

// Hub fans owner alerts out to every connected dashboard socket. Every
// connection belongs to the owner, so there is no per-user routing; an alert
// raised on any instance reaches all instances through Redis pub/sub.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out; nil means single instance.
	rdb *redis.Client

	// id marks envelopes this instance published, so its own subscription
	// does not deliver the same alert twice.
	id string

	logger logger.ILogger
}

// alertEnvelope is the cross-instance wire format on the Redis channel. The
// payload inside is exactly what dashboard sockets receive.
type alertEnvelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		id:         uuid.NewString(),
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
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client connected", map[string]interface{}{"clients": h.clientCount()})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Dashboard client disconnected", map[string]interface{}{"clients": h.clientCount()})
		}
	}
}

// NotifyOwner implements the executor's owner-notification contract over the
// live dashboard channel.
func (h *Hub) NotifyOwner(ctx context.Context, reason, detail string) error {
	h.Broadcast(Alert{Reason: reason, Detail: detail, At: time.Now()})
	return nil
}

// Broadcast pushes an alert to all local sockets and mirrors it to Redis so
// sibling instances deliver it too.
func (h *Hub) Broadcast(alert Alert) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "alert",
		"data": alert,
	})

	h.deliverLocal(data)

	if h.rdb != nil {
		env, _ := json.Marshal(alertEnvelope{Origin: h.id, Payload: data})
		h.rdb.Publish(context.Background(), alertChannel, env)
	}
}

func (h *Hub) deliverLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", nil)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, alertChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleMirror([]byte(msg.Payload))
	}
}

// handleMirror delivers an alert mirrored by a sibling instance, dropping
// envelopes this instance published itself (it already delivered locally).
func (h *Hub) handleMirror(payload []byte) {
	var env alertEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || len(env.Payload) == 0 {
		h.logger.Warn("Hub", "Dropping malformed mirrored alert", nil)
		return
	}
	if env.Origin == h.id {
		return
	}
	h.deliverLocal(env.Payload)
}
