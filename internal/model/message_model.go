package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Message struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId   uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_room_created,priority:1"`
	SenderId uuid.UUID `gorm:"type:uuid;not null;index"`
	Content  string    `gorm:"type:text;not null"`
	Kind     string    `gorm:"type:varchar(20);not null;default:'text'"`
	Status   string    `gorm:"type:varchar(20);not null;default:'sent'"`

	Edited   bool `gorm:"default:false"`
	EditedAt *time.Time

	ReplyToId *uuid.UUID     `gorm:"type:uuid"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`

	Reads []MessageRead `gorm:"foreignKey:MessageId"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_room_created,priority:2,sort:desc"`
	UpdatedAt *time.Time
}

func (Message) TableName() string {
	return "messages"
}

// MessageRead is one user's read receipt for one message. The composite
// primary key plus ON CONFLICT DO NOTHING inserts make mark-read idempotent
// without client-side check-then-act.
type MessageRead struct {
	MessageId uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	ReadAt    time.Time `gorm:"autoCreateTime"`
}

func (MessageRead) TableName() string {
	return "message_reads"
}
