package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType names a schedule change pushed to connected clients.
type EventType string

const (
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	TypeAvailabilitySaved   EventType = "availability_saved"
	TypeAvailabilityCleared EventType = "availability_cleared"
	TypeGameCreated         EventType = "game_created"
	TypeSubscriptionAdded   EventType = "subscription_added"
	TypeSubscriptionRemoved EventType = "subscription_removed"
	TypeSessionDaysCreated  EventType = "session_days_created"
	TypeSessionDayUpdated   EventType = "session_day_updated"
	TypeSessionDayDeleted   EventType = "session_day_deleted"
)

// Event is the wire format of the schedule feed. Payload content depends
// on the type: game ids, affected dates, session day snapshots.
type Event struct {
	Type      EventType       `json:"type"`
	ActorID   uuid.UUID       `json:"actor_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub fans schedule events out to every connected client. There is a
// single broadcast domain; consumers filter on their side.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Clients per user; one user may hold several connections.
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	events     chan []byte

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		events:      make(chan []byte, 64),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run owns the client maps; handlers only talk to it through channels.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.events:
			h.sendToAll(data)

		case <-ticker.C:
			h.ping()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast queues a schedule event for every connected client. Payload
// must be JSON-marshalable; a marshal failure is logged and dropped.
func (h *Hub) Broadcast(eventType EventType, actorID uuid.UUID, payload interface{}) {
	event := Event{
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
	}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("drop %s event: %v", eventType, err)
			return
		}
		event.Payload = data
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("drop %s event: %v", eventType, err)
		return
	}

	select {
	case h.events <- data:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

func (h *Hub) sendToAll(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			log.Printf("Client %s send channel full", client.ID)
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Event{Type: TypePing, Timestamp: time.Now()}
	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// OnlineUsers returns the ids of users with at least one open connection.
func (h *Hub) OnlineUsers() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(h.userClients))
	for userID := range h.userClients {
		users = append(users, userID)
	}
	return users
}
