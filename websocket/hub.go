// Package websocket implements the per-hostel chat relay. Messages are
// fanned out verbatim to the other members of the same hostel room; nothing
// is persisted and delivery is best-effort.
package websocket

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Conn is the slice of a websocket connection the hub needs. Satisfied by
// *websocket.Conn from gofiber/contrib.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	ID     uuid.UUID
	Hostel string
	Conn   Conn
}

// ChatMessage is relayed as-is between members of a hostel room.
type ChatMessage struct {
	Hostel  string `json:"hostel"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type Outbound struct {
	Sender  uuid.UUID
	Payload ChatMessage
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[uuid.UUID]*Client

	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Outbound
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[uuid.UUID]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Outbound),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Client %s joined chats of hostel %s", client.ID, client.Hostel)
			h.mu.Lock()
			room := h.rooms[client.Hostel]
			if room == nil {
				room = make(map[uuid.UUID]*Client)
				h.rooms[client.Hostel] = room
			}
			room[client.ID] = client
			h.mu.Unlock()

		case client := <-h.Unregister:
			log.Printf("Client %s left hostel %s", client.ID, client.Hostel)
			h.mu.Lock()
			if room, ok := h.rooms[client.Hostel]; ok {
				if existing, ok := room[client.ID]; ok && existing.Conn == client.Conn {
					delete(room, client.ID)
				}
				if len(room) == 0 {
					delete(h.rooms, client.Hostel)
				}
			}
			h.mu.Unlock()

		case msg := <-h.Broadcast:
			h.relay(msg)
		}
	}
}

func (h *Hub) relay(msg Outbound) {
	var failed []*Client

	h.mu.RLock()
	for _, client := range h.rooms[msg.Payload.Hostel] {
		if client.ID == msg.Sender {
			continue
		}
		if err := client.Conn.WriteJSON(msg.Payload); err != nil {
			log.Printf("Error sending message to client %s: %v", client.ID, err)
			failed = append(failed, client)
		}
	}
	h.mu.RUnlock()

	if len(failed) == 0 {
		return
	}
	h.mu.Lock()
	for _, client := range failed {
		client.Conn.Close()
		if room, ok := h.rooms[client.Hostel]; ok {
			delete(room, client.ID)
			if len(room) == 0 {
				delete(h.rooms, client.Hostel)
			}
		}
	}
	h.mu.Unlock()
}
