package contract

import (
	"context"
	"time"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementSessionCount atomically adjusts active_session_count by delta
	// (clamped at zero) and returns the resulting count.
	IncrementSessionCount(ctx context.Context, userId uuid.UUID, delta int) (int, error)
	UpdatePresence(ctx context.Context, userId uuid.UUID, status entity.PresenceStatus, lastSeen time.Time) error
}
