package events

import (
	"time"

	"github.com/google/uuid"

	"realtime-chat-be/internal/entity"
)

const (
	TypeMessageCreated  = "chat.message.created"
	TypeRoomCreated     = "chat.room.created"
	TypeRoomDeleted     = "chat.room.deleted"
	TypePresenceChanged = "chat.presence.changed"
)

func NewMessageCreatedEvent(msg *entity.Message, room *entity.Room) Event {
	participants := make([]string, 0, len(room.Participants))
	for _, id := range room.Participants {
		participants = append(participants, id.String())
	}
	return BaseEvent{
		Type: TypeMessageCreated,
		Data: map[string]interface{}{
			"message_id":   msg.Id.String(),
			"room_id":      msg.RoomId.String(),
			"room_kind":    string(room.Kind),
			"sender_id":    msg.SenderId.String(),
			"kind":         string(msg.Kind),
			"participants": participants,
		},
		OccurredAt: time.Now(),
	}
}

func NewRoomCreatedEvent(room *entity.Room) Event {
	return BaseEvent{
		Type: TypeRoomCreated,
		Data: map[string]interface{}{
			"room_id":    room.Id.String(),
			"room_kind":  string(room.Kind),
			"created_by": room.CreatedBy.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewRoomDeletedEvent(room *entity.Room, deletedBy uuid.UUID) Event {
	return BaseEvent{
		Type: TypeRoomDeleted,
		Data: map[string]interface{}{
			"room_id":    room.Id.String(),
			"deleted_by": deletedBy.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewPresenceChangedEvent(userId uuid.UUID, status string) Event {
	return BaseEvent{
		Type: TypePresenceChanged,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"status":  status,
		},
		OccurredAt: time.Now(),
	}
}
