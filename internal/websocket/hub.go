package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"studyaid-backend/internal/models"
	"studyaid-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub fans progress events out to WebSocket clients, keyed by the session id
// the client also sends as X-Session-ID on generate requests. With a Redis
// client, events arrive over pub/sub so any server instance can publish
// them; without one, the hub is itself the publisher.
type Hub struct {
	mu          sync.Mutex
	connections map[uuid.UUID][]*websocket.Conn
	redisClient *redis.Client
	cancelFuncs map[uuid.UUID]context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID][]*websocket.Conn),
		redisClient: redisClient,
		cancelFuncs: make(map[uuid.UUID]context.CancelFunc),
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(r.URL.Query().Get("session"))
	if err != nil {
		http.Error(w, "session query parameter must be a UUID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.registerConnection(sessionID, conn)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(sessionID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(sessionID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[sessionID] = append(h.connections[sessionID], conn)

	if h.redisClient != nil && len(h.connections[sessionID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[sessionID] = cancel
		go h.subscribeToPubSub(ctx, sessionID)
	}

	log.Printf("WebSocket connected: session %s (total: %d)", sessionID, len(h.connections[sessionID]))
}

func (h *Hub) unregisterConnection(sessionID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn.Close()

	conns := h.connections[sessionID]
	for i, c := range conns {
		if c == conn {
			h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	if len(h.connections[sessionID]) == 0 {
		delete(h.connections, sessionID)
		if cancel, ok := h.cancelFuncs[sessionID]; ok {
			cancel()
			delete(h.cancelFuncs, sessionID)
		}
	}

	log.Printf("WebSocket disconnected: session %s", sessionID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, sessionID uuid.UUID) {
	pubsub := h.redisClient.Subscribe(ctx, services.ProgressChannel(sessionID))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(sessionID, []byte(msg.Payload))
		}
	}
}

// broadcast holds the lock while writing; gorilla connections allow only one
// concurrent writer.
func (h *Hub) broadcast(sessionID uuid.UUID, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, conn := range h.connections[sessionID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("WebSocket write failed: session %s: %v", sessionID, err)
		}
	}
}

// Publish delivers a progress event to this instance's clients directly.
func (h *Hub) Publish(ctx context.Context, sessionID uuid.UUID, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast(sessionID, data)
}

// Sessions returns the number of sessions with at least one open connection.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}
