package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindFile  MessageKind = "file"
)

func (k MessageKind) Valid() bool {
	switch k {
	case MessageKindText, MessageKindImage, MessageKindFile:
		return true
	}
	return false
}

type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// MaxMessageContentLength bounds message bodies before they reach the store.
const MaxMessageContentLength = 4000

// ReadReceipt records that one user has seen one message. A user appears at
// most once per message.
type ReadReceipt struct {
	UserId uuid.UUID `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

type Message struct {
	Id       uuid.UUID
	RoomId   uuid.UUID
	SenderId uuid.UUID
	Content  string
	Kind     MessageKind
	Status   MessageStatus

	Edited   bool
	EditedAt *time.Time

	// ReplyToId must reference a message in the same room.
	ReplyToId *uuid.UUID
	Metadata  map[string]interface{}

	ReadBy []ReadReceipt

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (m *Message) ReadByUser(userId uuid.UUID) bool {
	for _, r := range m.ReadBy {
		if r.UserId == userId {
			return true
		}
	}
	return false
}

// Preview renders the bounded snippet stored on the room's last-message
// summary.
func (m *Message) Preview(senderName string) *LastMessagePreview {
	snippet := m.Content
	// Truncate on rune boundaries so the jsonb column always holds valid UTF-8.
	if runes := []rune(snippet); len(runes) > 120 {
		snippet = string(runes[:120])
	}
	return &LastMessagePreview{
		MessageId:  m.Id,
		Content:    snippet,
		SenderId:   m.SenderId,
		SenderName: senderName,
		Kind:       m.Kind,
		SentAt:     m.CreatedAt,
	}
}
