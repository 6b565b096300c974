package dto

import (
	"time"

	"github.com/google/uuid"

	"realtime-chat-be/internal/entity"
)

type CreateRoomRequest struct {
	Kind         string      `json:"kind" validate:"required,oneof=private group"`
	Participants []uuid.UUID `json:"participants" validate:"required,min=1"`
	Name         *string     `json:"name" validate:"omitempty,max=255"`
	Description  *string     `json:"description"`
}

type ParticipantResponse struct {
	Id          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	IsOnline    bool      `json:"is_online"`
}

type RoomResponse struct {
	Id           uuid.UUID                  `json:"id"`
	Kind         string                     `json:"kind"`
	Name         *string                    `json:"name,omitempty"`
	Description  *string                    `json:"description,omitempty"`
	AvatarURL    *string                    `json:"avatar_url,omitempty"`
	CreatedBy    uuid.UUID                  `json:"created_by"`
	Active       bool                       `json:"active"`
	Participants []ParticipantResponse      `json:"participants"`
	LastMessage  *entity.LastMessagePreview `json:"last_message,omitempty"`
	UnreadCount  int64                      `json:"unread_count"`
	CreatedAt    time.Time                  `json:"created_at"`
	UpdatedAt    time.Time                  `json:"updated_at"`
}

type ListRoomsResponse struct {
	Rooms []*RoomResponse `json:"rooms"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

type UpdateRoomRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
}

type UnreadCountResponse struct {
	RoomId uuid.UUID `json:"room_id"`
	Count  int64     `json:"count"`
}

type MarkReadResponse struct {
	RoomId uuid.UUID `json:"room_id"`
	Marked int64     `json:"marked"`
}
