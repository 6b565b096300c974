package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"realtime-chat-be/internal/pkg/logger"
)

const clusterChannel = "chat_cluster_events"

// Hub is the session registry. It tracks every live connection per user
// (multi-device) and the set of connections subscribed to each room, and
// fans outbound frames to them.
type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Room subscriptions: RoomID -> subscribed connections
	rooms map[uuid.UUID]map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out (nil in single-node mode)
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
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
			h.logger.Info("Hub", "Client registered", map[string]interface{}{
				"user_id":       client.UserID,
				"connection_id": client.Id,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			h.detachLocked(client)
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
					h.logger.Info("Hub", "Last device unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Subscribe attaches a connection to a room's fan-out set. Authorization is
// the router's job; the hub only tracks membership of the live set.
func (h *Hub) Subscribe(client *Client, roomId uuid.UUID) {
	h.mu.Lock()
	set, ok := h.rooms[roomId]
	if !ok {
		set = make(map[*Client]struct{})
		h.rooms[roomId] = set
	}
	set[client] = struct{}{}
	client.rooms[roomId] = struct{}{}
	h.mu.Unlock()
}

// Unsubscribe detaches a connection from a room. Idempotent.
func (h *Hub) Unsubscribe(client *Client, roomId uuid.UUID) {
	h.mu.Lock()
	h.unsubscribeLocked(client, roomId)
	h.mu.Unlock()
}

// IsSubscribed reports whether the connection is attached to the room.
func (h *Hub) IsSubscribed(client *Client, roomId uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := client.rooms[roomId]
	return ok
}

func (h *Hub) unsubscribeLocked(client *Client, roomId uuid.UUID) {
	if set, ok := h.rooms[roomId]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.rooms, roomId)
		}
	}
	delete(client.rooms, roomId)
}

// detachLocked removes the connection from every room it joined. Called while
// holding the write lock during unregister.
func (h *Hub) detachLocked(client *Client) {
	for roomId := range client.rooms {
		h.unsubscribeLocked(client, roomId)
	}
}

// BroadcastToRoom sends an event to every connection subscribed to the room.
// excludeUser, when non-nil, skips every session of that user.
func (h *Hub) BroadcastToRoom(roomId uuid.UUID, event string, payload interface{}, excludeUser *uuid.UUID) {
	data := EncodeOutbound(event, payload)

	h.mu.RLock()
	for client := range h.rooms[roomId] {
		if excludeUser != nil && client.UserID == *excludeUser {
			continue
		}
		h.deliver(client, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		h.publishToCluster(clusterPayload{TargetRoomId: roomId.String(), Message: data})
	}
}

// Broadcast sends an event to ALL connected clients, e.g. presence changes.
func (h *Hub) Broadcast(event string, payload interface{}) {
	data := EncodeOutbound(event, payload)

	h.mu.RLock()
	for _, clients := range h.clients {
		for _, client := range clients {
			h.deliver(client, data)
		}
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		h.publishToCluster(clusterPayload{TargetUserId: "*", Message: data})
	}
}

// SendToUser sends an event to every session of one user.
func (h *Hub) SendToUser(userId uuid.UUID, event string, payload interface{}) {
	data := EncodeOutbound(event, payload)

	h.mu.RLock()
	clients := h.clients[userId]
	for _, client := range clients {
		h.deliver(client, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		h.publishToCluster(clusterPayload{TargetUserId: userId.String(), Message: data})
	}
}

// sendDirect queues a frame for one connection. The read lock excludes the
// unregister branch in Run, which closes Send under the write lock, and the
// registration check skips connections already torn down.
func (h *Hub) sendDirect(client *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[client.UserID] {
		if c == client {
			h.deliver(c, data)
			return
		}
	}
}

// deliver pushes a frame into the client's send buffer. A full buffer means
// the reader is too slow; the connection is dropped rather than blocking the
// hub.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{
			"user_id":       client.UserID,
			"connection_id": client.Id,
		})
		go func() { h.unregister <- client }()
	}
}

type clusterPayload struct {
	TargetUserId string          `json:"target_user_id,omitempty"`
	TargetRoomId string          `json:"target_room_id,omitempty"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) publishToCluster(p clusterPayload) {
	jsonPayload, _ := json.Marshal(p)
	h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload clusterPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Cluster message parse error", map[string]interface{}{"error": err.Error()})
			continue
		}

		switch {
		case payload.TargetUserId == "*":
			h.mu.RLock()
			for _, clients := range h.clients {
				for _, client := range clients {
					h.deliver(client, payload.Message)
				}
			}
			h.mu.RUnlock()

		case payload.TargetRoomId != "":
			roomId, err := uuid.Parse(payload.TargetRoomId)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for client := range h.rooms[roomId] {
				h.deliver(client, payload.Message)
			}
			h.mu.RUnlock()

		case payload.TargetUserId != "":
			uid, err := uuid.Parse(payload.TargetUserId)
			if err != nil {
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients[uid] {
				h.deliver(client, payload.Message)
			}
			h.mu.RUnlock()
		}
	}
}
