package handlers

import (
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hostelites/hostelites-api/websocket"
)

type ChatHandler struct {
	hub *websocket.Hub
}

func NewChatHandler(hub *websocket.Hub) *ChatHandler {
	return &ChatHandler{hub: hub}
}

type joinMessage struct {
	Type   string `json:"type"`
	Hostel string `json:"hostel"`
}

func (m joinMessage) valid() bool {
	return m.Type == "join" && m.Hostel != ""
}

// ServeWs handles one chat connection. The client first sends a join message
// naming the hostel whose chat room it wants, then exchanges chat payloads
// that are relayed verbatim to the other members of that room.
func (h *ChatHandler) ServeWs(c *websocketcontrib.Conn) {
	var join joinMessage
	if err := c.ReadJSON(&join); err != nil {
		log.Printf("Chat join failed: could not read join message: %v", err)
		_ = c.WriteJSON(fiber.Map{"success": false, "message": "Invalid or missing join message"})
		c.Close()
		return
	}
	if !join.valid() {
		log.Printf("Chat join rejected: malformed join message (type=%q)", join.Type)
		_ = c.WriteJSON(fiber.Map{"success": false, "message": "Invalid or missing join message"})
		c.Close()
		return
	}

	client := &websocket.Client{ID: uuid.New(), Hostel: join.Hostel, Conn: c}
	h.hub.Register <- client
	defer func() {
		h.hub.Unregister <- client
		c.Close()
	}()

	for {
		var msg websocket.ChatMessage
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("Chat connection closed for client %s: %v", client.ID, err)
			} else {
				log.Printf("Chat read error for client %s: %v", client.ID, err)
			}
			break
		}

		// Clients only ever speak to the room they joined.
		msg.Hostel = client.Hostel
		h.hub.Broadcast <- websocket.Outbound{Sender: client.ID, Payload: msg}
	}
}
