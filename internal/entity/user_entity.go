package entity

import (
	"time"

	"github.com/google/uuid"
)

type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceOffline PresenceStatus = "offline"
	PresenceAway    PresenceStatus = "away"
)

func (s PresenceStatus) Valid() bool {
	switch s {
	case PresenceOnline, PresenceOffline, PresenceAway:
		return true
	}
	return false
}

// User is owned by the identity subsystem; the chat core only reads it and
// maintains the presence fields (IsOnline, Status, LastSeen, ActiveSessionCount).
type User struct {
	Id          uuid.UUID
	Email       string
	DisplayName string
	AvatarURL   *string

	IsOnline bool
	Status   PresenceStatus
	LastSeen time.Time
	// ActiveSessionCount is the number of live realtime connections for the
	// user across all devices. Presence flips offline only when it reaches 0.
	ActiveSessionCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}
