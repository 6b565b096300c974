package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Frames carry at most a 4000 character message body plus envelope.
	maxMessageSize = 16 * 1024
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Id identifies this connection; one user may hold several.
	Id string

	// UserID associated with this connection
	UserID uuid.UUID

	// Username cached from the auth token for outbound payloads.
	Username string

	// Buffered channel of outbound messages.
	Send chan []byte

	// rooms mirrors hub subscriptions; guarded by the hub mutex.
	rooms map[uuid.UUID]struct{}

	router *Router

	teardown sync.Once
}

// SendEvent queues one outbound frame for this connection only. Safe to call
// after the connection has been unregistered.
func (c *Client) SendEvent(event string, payload interface{}) {
	c.Hub.sendDirect(c, EncodeOutbound(event, payload))
}

// Close runs disconnect bookkeeping exactly once, whichever pump exits first:
// hub unregister, presence decrement and rate limiter cleanup.
func (c *Client) Close() {
	c.teardown.Do(func() {
		c.Hub.unregister <- c
		c.Conn.Close()
		c.router.HandleDisconnect(c)
	})
}

// readPump pumps messages from the websocket connection to the router.
func (c *Client) readPump() {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected close", map[string]interface{}{
					"user_id": c.UserID,
					"error":   err.Error(),
				})
			}
			break
		}
		if !c.router.HandleEvent(c, raw) {
			// Admission control asked for a forced disconnect.
			break
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued frames to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
