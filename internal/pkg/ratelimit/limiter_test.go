package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(rules map[string]Rule) (*Limiter, *time.Time) {
	l := NewLimiter(rules)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestAllowWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{
		"sendMessage": {Max: 3, Window: time.Minute, ViolationLimit: 3},
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "sendMessage"))
	}
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "sendMessage"))
}

func TestEscalationToTerminate(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{
		"sendMessage": {Max: 2, Window: time.Minute, ViolationLimit: 3},
	})

	assert.Equal(t, Allowed, l.Allow(ScopeUser, "u1", "sendMessage"))
	assert.Equal(t, Allowed, l.Allow(ScopeUser, "u1", "sendMessage"))

	// Three violations tolerated, the fourth forces a disconnect.
	assert.Equal(t, Denied, l.Allow(ScopeUser, "u1", "sendMessage"))
	assert.Equal(t, Denied, l.Allow(ScopeUser, "u1", "sendMessage"))
	assert.Equal(t, Denied, l.Allow(ScopeUser, "u1", "sendMessage"))
	assert.Equal(t, Terminate, l.Allow(ScopeUser, "u1", "sendMessage"))
}

func TestWindowRollover(t *testing.T) {
	l, now := newTestLimiter(map[string]Rule{
		"typing": {Max: 1, Window: 10 * time.Second, ViolationLimit: 3},
	})

	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "typing"))
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "typing"))

	// A fresh window forgets both the count and the accumulated violations.
	*now = now.Add(11 * time.Second)
	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "typing"))
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "typing"))
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "typing"))
}

func TestScopesAndKeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{
		"joinRoom": {Max: 1, Window: time.Minute, ViolationLimit: 3},
	})

	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "joinRoom"))
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "joinRoom"))

	// Another connection and the user scope still have their own budget.
	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c2", "joinRoom"))
	assert.Equal(t, Allowed, l.Allow(ScopeUser, "u1", "joinRoom"))
}

func TestUnknownEventIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{})

	for i := 0; i < 100; i++ {
		assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "somethingElse"))
	}
}

func TestClearResetsBudget(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{
		"sendMessage": {Max: 1, Window: time.Minute, ViolationLimit: 3},
		"typing":      {Max: 1, Window: time.Minute, ViolationLimit: 3},
	})

	l.Allow(ScopeConnection, "c1", "sendMessage")
	l.Allow(ScopeConnection, "c1", "typing")
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c1", "sendMessage"))

	l.Clear(ScopeConnection, "c1")
	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "sendMessage"))
	assert.Equal(t, Allowed, l.Allow(ScopeConnection, "c1", "typing"))
}

func TestClearLeavesOtherOwnersAlone(t *testing.T) {
	l, _ := newTestLimiter(map[string]Rule{
		"sendMessage": {Max: 1, Window: time.Minute, ViolationLimit: 3},
	})

	l.Allow(ScopeConnection, "c1", "sendMessage")
	l.Allow(ScopeConnection, "c2", "sendMessage")

	l.Clear(ScopeConnection, "c1")
	assert.Equal(t, Denied, l.Allow(ScopeConnection, "c2", "sendMessage"))
}
