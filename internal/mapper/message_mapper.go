package mapper

import (
	"encoding/json"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(msg.Metadata) > 0 {
		_ = json.Unmarshal(msg.Metadata, &metadata)
	}

	readBy := make([]entity.ReadReceipt, 0, len(msg.Reads))
	for _, r := range msg.Reads {
		readBy = append(readBy, entity.ReadReceipt{UserId: r.UserId, ReadAt: r.ReadAt})
	}

	return &entity.Message{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		Kind:      entity.MessageKind(msg.Kind),
		Status:    entity.MessageStatus(msg.Status),
		Edited:    msg.Edited,
		EditedAt:  msg.EditedAt,
		ReplyToId: msg.ReplyToId,
		Metadata:  metadata,
		ReadBy:    readBy,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var metadata datatypes.JSON
	if msg.Metadata != nil {
		if data, err := json.Marshal(msg.Metadata); err == nil {
			metadata = data
		}
	}

	return &model.Message{
		Id:        msg.Id,
		RoomId:    msg.RoomId,
		SenderId:  msg.SenderId,
		Content:   msg.Content,
		Kind:      string(msg.Kind),
		Status:    string(msg.Status),
		Edited:    msg.Edited,
		EditedAt:  msg.EditedAt,
		ReplyToId: msg.ReplyToId,
		Metadata:  metadata,
		CreatedAt: msg.CreatedAt,
		UpdatedAt: msg.UpdatedAt,
	}
}
