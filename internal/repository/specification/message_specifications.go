package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

// CreatedBefore implements the history cursor: strictly earlier than the
// anchor message's timestamp.
type CreatedBefore struct {
	Before time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Before)
}

type NotSentBy struct {
	UserID uuid.UUID
}

func (s NotSentBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id <> ?", s.UserID)
}

// NotReadBy selects messages missing a read receipt from the user.
type NotReadBy struct {
	UserID uuid.UUID
}

func (s NotReadBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = messages.id AND mr.user_id = ?)",
		s.UserID,
	)
}
