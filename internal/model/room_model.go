package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Room struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string    `gorm:"type:varchar(20);not null;index"`
	Name        *string   `gorm:"type:varchar(255)"`
	Description *string   `gorm:"type:text"`
	AvatarURL   *string   `gorm:"type:text"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index"`
	Active      bool      `gorm:"default:true;index"`

	// Partial unique index: only private rooms carry a pair key, and at most
	// one active row may exist per pair. Concurrent create-or-get relies on
	// the insert failing here rather than on check-then-act. Scoped to active
	// rows so a deleted pair can be recreated.
	PairKey *string `gorm:"type:varchar(80);uniqueIndex:idx_rooms_pair_key,where:pair_key IS NOT NULL AND active"`

	LastMessage datatypes.JSON `gorm:"type:jsonb"`

	Participants []RoomParticipant `gorm:"foreignKey:RoomId"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomParticipant gives participant sets real set semantics: the composite
// primary key makes duplicate membership impossible at the store level.
type RoomParticipant struct {
	RoomId   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (RoomParticipant) TableName() string {
	return "room_participants"
}
