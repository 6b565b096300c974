package entity

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"realtime-chat-be/internal/pkg/apperror"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestValidateCreateParticipants(t *testing.T) {
	tests := []struct {
		name     string
		kind     RoomKind
		count    int
		wantKind apperror.Kind
	}{
		{name: "private with two", kind: RoomKindPrivate, count: 2},
		{name: "private with one", kind: RoomKindPrivate, count: 1, wantKind: apperror.KindInvalidOperation},
		{name: "private with three", kind: RoomKindPrivate, count: 3, wantKind: apperror.KindInvalidOperation},
		{name: "group with three", kind: RoomKindGroup, count: 3},
		{name: "group with many", kind: RoomKindGroup, count: 10},
		{name: "group with two", kind: RoomKindGroup, count: 2, wantKind: apperror.KindInvalidOperation},
		{name: "unknown kind", kind: RoomKind("channel"), count: 3, wantKind: apperror.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCreateParticipants(tt.kind, ids(tt.count))
			if tt.wantKind == 0 {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.Is(err, tt.wantKind))
			}
		})
	}
}

func TestCanAddParticipant(t *testing.T) {
	assert.NoError(t, CanAddParticipant(&Room{Kind: RoomKindGroup, Active: true}))

	err := CanAddParticipant(&Room{Kind: RoomKindPrivate, Active: true})
	assert.True(t, apperror.Is(err, apperror.KindInvalidOperation))

	err = CanAddParticipant(&Room{Kind: RoomKindGroup, Active: false})
	assert.True(t, apperror.Is(err, apperror.KindInvalidOperation))
}

func TestCanRemoveParticipant(t *testing.T) {
	member := uuid.New()
	room := &Room{Kind: RoomKindGroup, Active: true, Participants: []uuid.UUID{member}}

	assert.NoError(t, CanRemoveParticipant(room, member))

	err := CanRemoveParticipant(room, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	private := &Room{Kind: RoomKindPrivate, Active: true, Participants: []uuid.UUID{member}}
	err = CanRemoveParticipant(private, member)
	assert.True(t, apperror.Is(err, apperror.KindInvalidOperation))
}

func TestRoomBecomesInactive(t *testing.T) {
	assert.True(t, RoomBecomesInactive(0))
	assert.False(t, RoomBecomesInactive(1))
	assert.False(t, RoomBecomesInactive(5))
}

func TestDeduplicateParticipants(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	got := DeduplicateParticipants([]uuid.UUID{a, b, a, c, b})
	assert.Equal(t, []uuid.UUID{a, b, c}, got, "first-seen order is preserved")

	assert.Empty(t, DeduplicateParticipants(nil))
}

func TestPrivatePairKey(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// Order-insensitive and stable.
	assert.Equal(t, PrivatePairKey(a, b), PrivatePairKey(b, a))
	assert.NotEqual(t, PrivatePairKey(a, b), PrivatePairKey(a, uuid.New()))
}

func TestMessagePreviewTruncates(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	m := &Message{Id: uuid.New(), Content: string(long), Kind: MessageKindText}
	preview := m.Preview("Alice")

	assert.Len(t, preview.Content, 120)
	assert.Equal(t, "Alice", preview.SenderName)
	assert.Equal(t, m.Id, preview.MessageId)

	short := &Message{Id: uuid.New(), Content: "hi"}
	assert.Equal(t, "hi", short.Preview("Bob").Content)

	// Multi-byte content must never be cut mid-rune.
	wide := &Message{Id: uuid.New(), Content: strings.Repeat("日", 200)}
	snippet := wide.Preview("Yuki").Content
	assert.True(t, utf8.ValidString(snippet))
	assert.Equal(t, 120, utf8.RuneCountInString(snippet))
}
