package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindRateLimited, KindOf(RateLimited("slow down")))

	// Plain errors classify as internal.
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := InvalidOperation("too old")
	wrapped := fmt.Errorf("edit failed: %w", inner)

	assert.True(t, Is(wrapped, KindInvalidOperation))
	assert.False(t, Is(wrapped, KindNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, "failed to load room", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to load room")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewf(t *testing.T) {
	err := Newf(KindNotFound, "%d participant(s) do not exist", 2)
	assert.Equal(t, "2 participant(s) do not exist", err.Error())
	assert.True(t, Is(err, KindNotFound))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "invalid_input", KindInvalidInput.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "internal", KindInternal.String())
}
