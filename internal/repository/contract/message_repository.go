package contract

import (
	"context"
	"time"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Update(ctx context.Context, message *entity.Message) error
	// Delete removes the row permanently; there is no soft delete for messages.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkRoomRead appends a (user, readAt) receipt to every message in the
	// room not authored by the user, skipping ones already read. Idempotent at
	// the store level; returns the number of receipts actually written.
	MarkRoomRead(ctx context.Context, roomId, userId uuid.UUID, readAt time.Time) (int64, error)
	UnreadCount(ctx context.Context, roomId, userId uuid.UUID) (int64, error)
}
