package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs wires an upgraded connection into the hub and runs its pumps. The
// caller has already authenticated the user.
func ServeWs(hub *Hub, router *Router, c *websocket.Conn, userID uuid.UUID, username string) {
	client := &Client{
		Hub:      hub,
		Conn:     c,
		Id:       uuid.New().String(),
		UserID:   userID,
		Username: username,
		Send:     make(chan []byte, 256),
		rooms:    make(map[uuid.UUID]struct{}),
		router:   router,
	}
	client.Hub.register <- client
	router.HandleConnect(client)

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
