package ratelimit

import (
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Decision is the outcome of one admission check.
type Decision int

const (
	Allowed Decision = iota
	// Denied rejects the event but keeps the connection alive.
	Denied
	// Terminate means the caller has kept hammering past the violation limit
	// and the connection should be forcibly closed.
	Terminate
)

// Scope separates the two counter namespaces: per-connection windows reset on
// reconnect, per-user windows survive a reconnect within the window.
type Scope string

const (
	ScopeConnection Scope = "conn"
	ScopeUser       Scope = "user"
)

// Rule is the (max, window, violation-threshold) triple for one event type.
type Rule struct {
	Max            int
	Window         time.Duration
	ViolationLimit int
}

type window struct {
	count      int
	resetAt    time.Time
	violations int
}

// Limiter implements per-key fixed-window counting with escalating
// enforcement. Windows are created lazily, expire by rollover (the backing
// cache purges them periodically) and can be cleared explicitly on teardown.
type Limiter struct {
	mu      sync.Mutex
	windows *cache.Cache
	rules   map[string]Rule
	now     func() time.Time
}

func NewLimiter(rules map[string]Rule) *Limiter {
	return &Limiter{
		windows: cache.New(5*time.Minute, 10*time.Minute),
		rules:   rules,
		now:     time.Now,
	}
}

func key(scope Scope, id, event string) string {
	return string(scope) + ":" + id + ":" + event
}

// Allow checks and counts one inbound event for the given scope and key.
func (l *Limiter) Allow(scope Scope, id, event string) Decision {
	rule, ok := l.rules[event]
	if !ok || rule.Max <= 0 {
		return Allowed
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := key(scope, id, event)

	var w *window
	if x, found := l.windows.Get(k); found {
		w = x.(*window)
	}

	if w == nil || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(rule.Window)}
		l.windows.Set(k, w, rule.Window)
		return Allowed
	}

	if w.count < rule.Max {
		w.count++
		return Allowed
	}

	w.violations++
	if w.violations > rule.ViolationLimit {
		return Terminate
	}
	return Denied
}

// Clear drops every window belonging to one connection or user. Called on
// disconnect and logout so stale counters do not outlive their owner.
func (l *Limiter) Clear(scope Scope, id string) {
	prefix := string(scope) + ":" + id + ":"

	l.mu.Lock()
	defer l.mu.Unlock()

	for k := range l.windows.Items() {
		if strings.HasPrefix(k, prefix) {
			l.windows.Delete(k)
		}
	}
}
