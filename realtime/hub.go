// Package realtime implements the room-scoped live push channel. Delivery is
// at-most-once and fire-and-forget: durable storage stays the source of truth
// and clients that miss an event catch up via their next poll.
package realtime

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// BroadcastRoom receives "new unassigned request" events so any admin session
// can react before assignment.
const BroadcastRoom = "unassigned-requests"

// UserRoom returns the room key for a customer or admin session.
func UserRoom(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}

// MechanicRoom returns the room key for a mechanic session.
func MechanicRoom(mechanicID string) string {
	return fmt.Sprintf("mechanic-%s", mechanicID)
}

// Event is the wire frame pushed to live sessions.
type Event struct {
	Event string `json:"event"`
	Room  string `json:"room"`
	Data  any    `json:"data"`
}

// Hub routes events to the clients joined to each room.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]bool
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*Client]bool),
		logger: logger,
	}
}

// Join registers a client in a room.
func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[room] = clients
	}
	clients[c] = true
}

// Leave removes a client from a room.
func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[room]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
}

// LeaveAll removes a client from every room it joined.
func (h *Hub) LeaveAll(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, clients := range h.rooms {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Emit pushes an event to every client in the room. It never blocks: clients
// whose send buffer is full are dropped from the hub.
func (h *Hub) Emit(room, event string, payload any) {
	frame, err := json.Marshal(Event{Event: event, Room: room, Data: payload})
	if err != nil {
		h.logger.Warn("realtime: failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case <-c.done:
			// Already tearing down; a concurrent emit may still hold it.
		case c.send <- frame:
		default:
			h.logger.Warn("realtime: dropping slow client", zap.String("room", room))
			h.disconnect(c)
		}
	}
}

// disconnect removes the client from all rooms and signals its pumps to tear
// the connection down. It must not close the send channel: other emits may
// still hold the client in their room snapshot.
func (h *Hub) disconnect(c *Client) {
	h.LeaveAll(c)
	c.closeOnce.Do(func() { close(c.done) })
}
