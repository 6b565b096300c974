package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/pkg/events"
)

func newTestPresenceService() (IPresenceService, *memoryStore, *fakePublisher) {
	store := newMemoryStore()
	pub := &fakePublisher{}
	return NewPresenceService(newFakeFactory(store), pub), store, pub
}

func TestSessionTransitions(t *testing.T) {
	svc, store, pub := newTestPresenceService()
	ctx := context.Background()

	alice := store.addUser("alice")

	// First device: 0 -> 1, broadcast due.
	first, err := svc.SessionConnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.True(t, first)
	assert.True(t, store.users[alice.Id].IsOnline)

	// Second device: no transition, no broadcast.
	second, err := svc.SessionConnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.False(t, second)

	// Dropping one of two devices keeps the user online.
	offline, err := svc.SessionDisconnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.False(t, offline)
	assert.True(t, store.users[alice.Id].IsOnline)

	// Last device gone: 1 -> 0, user goes offline.
	offline, err = svc.SessionDisconnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.True(t, offline)
	assert.False(t, store.users[alice.Id].IsOnline)

	require.Len(t, pub.published, 2)
	assert.Equal(t, events.TypePresenceChanged, pub.published[0].EventType())
}

func TestSessionDisconnectedClampsAtZero(t *testing.T) {
	svc, store, _ := newTestPresenceService()
	ctx := context.Background()

	alice := store.addUser("alice")

	// A stray extra disconnect must not push the count negative and must not
	// report another offline transition.
	offline, err := svc.SessionDisconnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.True(t, offline, "count lands on zero, offline reported once")

	offline, err = svc.SessionDisconnected(ctx, alice.Id)
	require.NoError(t, err)
	assert.True(t, offline)
	assert.Equal(t, 0, store.users[alice.Id].ActiveSessionCount)
}

func TestUpdateStatus(t *testing.T) {
	svc, store, pub := newTestPresenceService()
	ctx := context.Background()

	alice := store.addUser("alice")

	require.NoError(t, svc.UpdateStatus(ctx, alice.Id, entity.PresenceAway))
	assert.Equal(t, entity.PresenceAway, store.users[alice.Id].Status)
	require.Len(t, pub.published, 1)

	err := svc.UpdateStatus(ctx, alice.Id, entity.PresenceStatus("busy"))
	assert.True(t, apperror.Is(err, apperror.KindInvalidInput))
	assert.Len(t, pub.published, 1, "invalid status publishes nothing")
}

func TestGetUser(t *testing.T) {
	svc, store, _ := newTestPresenceService()
	ctx := context.Background()

	alice := store.addUser("alice")

	u, err := svc.GetUser(ctx, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, alice.Id, u.Id)

	_, err = svc.GetUser(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
