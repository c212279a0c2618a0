package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a connection to a document room and pumps until the
// peer goes away.
func ServeWs(hub *Hub, c *websocket.Conn, documentID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, DocumentID: documentID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
