package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"course-copilot-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "copilot_ops_events"

// Hub fans operational events out to every connected staff client. Each
// staff member can hold several connections (multi-device).
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Identifies this instance on the relay channel so its own messages
	// are not delivered twice locally.
	instanceID string

	// Redis relay for multi-instance deployments; nil means single instance.
	rdb *redis.Client

	logger logger.ILogger
}

// relayEnvelope wraps a payload on the Redis channel with the id of the
// instance that published it.
type relayEnvelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		instanceID: uuid.NewString(),
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
			h.clients[client.StaffID] = append(h.clients[client.StaffID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Staff client registered", map[string]interface{}{"staff_id": client.StaffID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.StaffID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.StaffID] = append(clients[:i], clients[i+1:]...)
						// Only place the channel is closed; a second
						// unregister for the same client finds nothing.
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.StaffID]) == 0 {
					delete(h.clients, client.StaffID)
					h.logger.Info("Hub", "Staff client unregistered", map[string]interface{}{"staff_id": client.StaffID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers an event to every local client and relays it to the
// other instances through Redis.
func (h *Hub) Broadcast(eventType string, data map[string]interface{}) {
	payload, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal broadcast", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliverLocal(payload)

	if h.rdb != nil {
		wrapped, err := json.Marshal(relayEnvelope{Origin: h.instanceID, Payload: payload})
		if err != nil {
			h.logger.Error("Hub", "Failed to wrap relay message", map[string]interface{}{"error": err.Error()})
			return
		}
		h.rdb.Publish(context.Background(), clusterChannel, wrapped)
	}
}

func (h *Hub) deliverLocal(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				// Slow consumer: drop the payload and hand the connection to
				// the unregister path, which owns closing Send.
				client.dropOnce.Do(func() {
					go func(c *Client) { h.unregister <- c }(client)
				})
			}
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope relayEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Malformed relay message", map[string]interface{}{"error": err.Error()})
			continue
		}
		// Local clients already got this message straight from Broadcast.
		if envelope.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(envelope.Payload)
	}
}
