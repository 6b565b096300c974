package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RoomKind string

const (
	RoomKindPrivate RoomKind = "private"
	RoomKindGroup   RoomKind = "group"
)

func (k RoomKind) Valid() bool {
	return k == RoomKindPrivate || k == RoomKindGroup
}

// LastMessagePreview is the denormalized summary stored on the room so room
// listings do not need to touch the messages table.
type LastMessagePreview struct {
	MessageId  uuid.UUID   `json:"message_id"`
	Content    string      `json:"content"`
	SenderId   uuid.UUID   `json:"sender_id"`
	SenderName string      `json:"sender_name"`
	Kind       MessageKind `json:"kind"`
	SentAt     time.Time   `json:"sent_at"`
}

type Room struct {
	Id          uuid.UUID
	Kind        RoomKind
	Name        *string
	Description *string
	CreatedBy   uuid.UUID
	Active      bool
	AvatarURL   *string

	// PairKey is set only for private rooms: the two participant ids sorted
	// lexicographically and joined with ':'. The partial unique index on it
	// is what makes concurrent create-or-get for the same pair converge.
	PairKey *string

	Participants []uuid.UUID
	LastMessage  *LastMessagePreview

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Room) HasParticipant(userId uuid.UUID) bool {
	for _, id := range r.Participants {
		if id == userId {
			return true
		}
	}
	return false
}

// PrivatePairKey canonicalizes a two-participant set into the deterministic
// key used by the private-room uniqueness index. Argument order is irrelevant.
func PrivatePairKey(a, b uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return strings.Join(ids, ":")
}
