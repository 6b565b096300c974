package dto

import (
	"time"

	"github.com/google/uuid"

	"realtime-chat-be/internal/entity"
)

type SendMessageRequest struct {
	Content  string                 `json:"content" validate:"required,max=4000"`
	Kind     string                 `json:"type" validate:"omitempty,oneof=text image file"`
	ReplyTo  *uuid.UUID             `json:"reply_to"`
	Metadata map[string]interface{} `json:"metadata"`
}

type SenderResponse struct {
	Id          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

// ReplyPreview is the resolved snippet of the replied-to message, included so
// clients can render the quote without a second fetch.
type ReplyPreview struct {
	Id         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	SenderId   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
}

type MessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	RoomId    uuid.UUID              `json:"room_id"`
	Sender    SenderResponse         `json:"sender"`
	Content   string                 `json:"content"`
	Kind      string                 `json:"type"`
	Status    string                 `json:"status"`
	Edited    bool                   `json:"edited"`
	EditedAt  *time.Time             `json:"edited_at,omitempty"`
	ReplyTo   *ReplyPreview          `json:"reply_to,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ReadBy    []entity.ReadReceipt   `json:"read_by"`
	CreatedAt time.Time              `json:"created_at"`
}

type EditMessageRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

// GetMessagesQuery supports both offset pagination and the `before` cursor;
// when Before is set it overrides offset semantics.
type GetMessagesQuery struct {
	Page   int        `query:"page"`
	Limit  int        `query:"limit"`
	Before *uuid.UUID `query:"before"`
}

type GetMessagesResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
	HasMore  bool               `json:"has_more"`
}
