package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newHubClient(hub *Hub, name string) *Client {
	return &Client{
		Hub:      hub,
		Id:       uuid.New().String(),
		UserID:   uuid.New(),
		Username: name,
		Send:     make(chan []byte, 4),
		rooms:    make(map[uuid.UUID]struct{}),
	}
}

func TestSendEventToLiveClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := newHubClient(hub, "alice")
	hub.register <- client

	// The register channel is unbuffered and Run is a single loop, so a
	// second registration completing means the first was fully processed.
	hub.register <- newHubClient(hub, "bob")

	client.SendEvent(EventError, ErrorPayload{Message: "slow down"})

	frame := <-client.Send
	require.NotEmpty(t, frame)
	assert.Contains(t, string(frame), "slow down")
}

func TestSendEventAfterUnregisterDoesNotPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := newHubClient(hub, "alice")
	hub.register <- client
	hub.unregister <- client
	hub.register <- newHubClient(hub, "bob")

	// The unregister branch has closed Send by now; a late error frame for
	// the dead connection must be dropped, not panic the sender.
	assert.NotPanics(t, func() {
		client.SendEvent(EventError, ErrorPayload{Message: "too late"})
	})

	_, open := <-client.Send
	assert.False(t, open, "unregister closes the send channel")
}

func TestUnregisterDetachesRooms(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := newHubClient(hub, "alice")
	hub.register <- client
	hub.register <- newHubClient(hub, "bob")

	roomId := uuid.New()
	hub.Subscribe(client, roomId)
	require.True(t, hub.IsSubscribed(client, roomId))

	hub.unregister <- client
	hub.register <- newHubClient(hub, "carol")

	assert.False(t, hub.IsSubscribed(client, roomId))
}
