package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveOnly excludes soft-deleted rooms. Every room-fetch path that serves
// user traffic must include this; inactive rooms are invisible.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

// ByPairKey looks up the unique private room for a canonical participant pair.
type ByPairKey struct {
	PairKey string
}

func (s ByPairKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pair_key = ?", s.PairKey)
}

// HasParticipant restricts rooms to those the user is a member of.
type HasParticipant struct {
	UserID uuid.UUID
}

func (s HasParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM room_participants rp WHERE rp.room_id = rooms.id AND rp.user_id = ?)",
		s.UserID,
	)
}
