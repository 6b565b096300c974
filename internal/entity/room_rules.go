package entity

import (
	"github.com/google/uuid"

	"realtime-chat-be/internal/pkg/apperror"
)

// Pure membership and consistency rules. Callers validate with these before
// persisting; none of them touch the store.

// ValidateCreateParticipants checks the creation-time participant-count
// invariant for a room kind. The set is assumed deduplicated.
func ValidateCreateParticipants(kind RoomKind, participants []uuid.UUID) error {
	switch kind {
	case RoomKindPrivate:
		if len(participants) != 2 {
			return apperror.InvalidOperation("private room requires exactly 2 participants")
		}
	case RoomKindGroup:
		if len(participants) < 3 {
			return apperror.InvalidOperation("group room requires at least 3 participants")
		}
	default:
		return apperror.InvalidInput("unknown room kind")
	}
	return nil
}

// CanAddParticipant rejects membership growth on private rooms. Group rooms
// accept joins at any size.
func CanAddParticipant(room *Room) error {
	if !room.Active {
		return apperror.InvalidOperation("room is no longer active")
	}
	if room.Kind == RoomKindPrivate {
		return apperror.InvalidOperation("private room membership cannot change")
	}
	return nil
}

// CanRemoveParticipant allows a group room to shrink to any size, including
// zero. The >=3 rule binds creation only. Private membership never changes.
func CanRemoveParticipant(room *Room, userId uuid.UUID) error {
	if room.Kind == RoomKindPrivate {
		return apperror.InvalidOperation("private room membership cannot change")
	}
	if !room.HasParticipant(userId) {
		return apperror.Forbidden("user is not a participant of this room")
	}
	return nil
}

// RoomBecomesInactive reports whether a membership removal leaving the given
// number of participants deactivates the room.
func RoomBecomesInactive(remaining int) bool {
	return remaining == 0
}

// DeduplicateParticipants preserves first-seen order while dropping repeats.
func DeduplicateParticipants(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
