package mapper

import (
	"encoding/json"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}

	var preview *entity.LastMessagePreview
	if len(r.LastMessage) > 0 {
		var p entity.LastMessagePreview
		if err := json.Unmarshal(r.LastMessage, &p); err == nil {
			preview = &p
		}
	}

	participants := make([]uuid.UUID, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, p.UserId)
	}

	return &entity.Room{
		Id:           r.Id,
		Kind:         entity.RoomKind(r.Kind),
		Name:         r.Name,
		Description:  r.Description,
		AvatarURL:    r.AvatarURL,
		CreatedBy:    r.CreatedBy,
		Active:       r.Active,
		PairKey:      r.PairKey,
		Participants: participants,
		LastMessage:  preview,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}

	var preview datatypes.JSON
	if r.LastMessage != nil {
		if data, err := json.Marshal(r.LastMessage); err == nil {
			preview = data
		}
	}

	participants := make([]model.RoomParticipant, 0, len(r.Participants))
	for _, id := range r.Participants {
		participants = append(participants, model.RoomParticipant{
			RoomId: r.Id,
			UserId: id,
		})
	}

	return &model.Room{
		Id:           r.Id,
		Kind:         string(r.Kind),
		Name:         r.Name,
		Description:  r.Description,
		AvatarURL:    r.AvatarURL,
		CreatedBy:    r.CreatedBy,
		Active:       r.Active,
		PairKey:      r.PairKey,
		LastMessage:  preview,
		Participants: participants,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
