package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"realtime-chat-be/internal/pkg/apperror"
)

// Inbound event names. Each one has its own admission-control rule.
const (
	EventJoinRoom     = "joinRoom"
	EventLeaveRoom    = "leaveRoom"
	EventSendMessage  = "sendMessage"
	EventTyping       = "typing"
	EventStopTyping   = "stopTyping"
	EventMessageRead  = "messageRead"
	EventUpdateStatus = "updateStatus"
)

// Outbound event names.
const (
	EventRoomJoined        = "roomJoined"
	EventRoomLeft          = "roomLeft"
	EventUserJoined        = "userJoined"
	EventUserLeft          = "userLeft"
	EventNewMessage        = "newMessage"
	EventUserTyping        = "userTyping"
	EventMessageReadOut    = "messageRead"
	EventUserStatusChanged = "userStatusChanged"
	EventError             = "error"
)

// frame is the wire envelope for both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// InboundEvent is the closed union of events a client may send. Exactly one
// payload field is non-nil after decoding; payload shapes are statically
// checked instead of being pulled out of loose maps.
type InboundEvent struct {
	Name string

	JoinRoom     *JoinRoomPayload
	LeaveRoom    *LeaveRoomPayload
	SendMessage  *SendMessagePayload
	Typing       *TypingPayload
	MessageRead  *MessageReadPayload
	UpdateStatus *UpdateStatusPayload
}

type JoinRoomPayload struct {
	RoomId uuid.UUID `json:"roomId"`
}

type LeaveRoomPayload struct {
	RoomId uuid.UUID `json:"roomId"`
}

type SendMessagePayload struct {
	RoomId   uuid.UUID              `json:"roomId"`
	Content  string                 `json:"content"`
	Kind     string                 `json:"type"`
	ReplyTo  *uuid.UUID             `json:"replyTo"`
	Metadata map[string]interface{} `json:"metadata"`
}

type TypingPayload struct {
	RoomId uuid.UUID `json:"roomId"`
	// Pointer so a missing boolean is distinguishable from false.
	IsTyping *bool `json:"isTyping"`
}

type MessageReadPayload struct {
	RoomId    uuid.UUID `json:"roomId"`
	MessageId uuid.UUID `json:"messageId"`
}

type UpdateStatusPayload struct {
	Status string `json:"status"`
}

// DecodeInbound parses one wire frame into the tagged union. Unknown events
// and malformed payloads fail with InvalidInput; the connection stays up.
func DecodeInbound(raw []byte) (*InboundEvent, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, apperror.InvalidInput("malformed event frame")
	}

	evt := &InboundEvent{Name: f.Event}

	decode := func(v interface{}) error {
		if len(f.Data) == 0 {
			return apperror.InvalidInput("missing event payload")
		}
		if err := json.Unmarshal(f.Data, v); err != nil {
			return apperror.Newf(apperror.KindInvalidInput, "invalid payload for %s", f.Event)
		}
		return nil
	}

	switch f.Event {
	case EventJoinRoom:
		evt.JoinRoom = &JoinRoomPayload{}
		if err := decode(evt.JoinRoom); err != nil {
			return nil, err
		}
		if evt.JoinRoom.RoomId == uuid.Nil {
			return nil, apperror.InvalidInput("roomId is required")
		}
	case EventLeaveRoom:
		evt.LeaveRoom = &LeaveRoomPayload{}
		if err := decode(evt.LeaveRoom); err != nil {
			return nil, err
		}
		if evt.LeaveRoom.RoomId == uuid.Nil {
			return nil, apperror.InvalidInput("roomId is required")
		}
	case EventSendMessage:
		evt.SendMessage = &SendMessagePayload{}
		if err := decode(evt.SendMessage); err != nil {
			return nil, err
		}
		if evt.SendMessage.RoomId == uuid.Nil {
			return nil, apperror.InvalidInput("roomId is required")
		}
	case EventTyping, EventStopTyping:
		evt.Typing = &TypingPayload{}
		if err := decode(evt.Typing); err != nil {
			return nil, err
		}
		if evt.Typing.RoomId == uuid.Nil {
			return nil, apperror.InvalidInput("roomId is required")
		}
		if f.Event == EventTyping && evt.Typing.IsTyping == nil {
			return nil, apperror.InvalidInput("isTyping must be a boolean")
		}
		if f.Event == EventStopTyping {
			off := false
			evt.Typing.IsTyping = &off
		}
		evt.Name = EventTyping
	case EventMessageRead:
		evt.MessageRead = &MessageReadPayload{}
		if err := decode(evt.MessageRead); err != nil {
			return nil, err
		}
		if evt.MessageRead.RoomId == uuid.Nil || evt.MessageRead.MessageId == uuid.Nil {
			return nil, apperror.InvalidInput("roomId and messageId are required")
		}
	case EventUpdateStatus:
		evt.UpdateStatus = &UpdateStatusPayload{}
		if err := decode(evt.UpdateStatus); err != nil {
			return nil, err
		}
		if evt.UpdateStatus.Status == "" {
			return nil, apperror.InvalidInput("status is required")
		}
	default:
		return nil, apperror.Newf(apperror.KindInvalidInput, "unknown event %q", f.Event)
	}

	return evt, nil
}

// EncodeOutbound renders an outbound frame. Marshal failures cannot happen for
// the payload types used here, so the error is swallowed after logging by
// callers that care.
func EncodeOutbound(event string, payload interface{}) []byte {
	data, _ := json.Marshal(payload)
	out, _ := json.Marshal(frame{Event: event, Data: data})
	return out
}

// Shared outbound payload shapes.

type ErrorPayload struct {
	Message string `json:"message"`
}

type RoomAckPayload struct {
	RoomId  uuid.UUID `json:"roomId"`
	Message string    `json:"message"`
}

type UserRoomPayload struct {
	UserId    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

type UserTypingPayload struct {
	UserId    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	IsTyping  bool      `json:"isTyping"`
	Timestamp time.Time `json:"timestamp"`
}

type MessageReadOutPayload struct {
	MessageId uuid.UUID `json:"messageId"`
	UserId    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	ReadAt    time.Time `json:"readAt"`
}

type StatusChangedPayload struct {
	UserId    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type NewMessagePayload struct {
	Message   interface{} `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}
