package contract

import (
	"context"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoomRepository interface {
	// Create inserts the room and its participant rows. A private room whose
	// pair key already exists fails with apperror.KindInvalidOperation wrapping
	// the unique violation; callers re-fetch on that outcome.
	Create(ctx context.Context, room *entity.Room) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// AddParticipant is idempotent: inserting an existing membership is a no-op.
	AddParticipant(ctx context.Context, roomId, userId uuid.UUID) error
	RemoveParticipant(ctx context.Context, roomId, userId uuid.UUID) error
	CountParticipants(ctx context.Context, roomId uuid.UUID) (int64, error)

	UpdateFields(ctx context.Context, roomId uuid.UUID, fields map[string]interface{}) error
	SetLastMessage(ctx context.Context, roomId uuid.UUID, preview *entity.LastMessagePreview) error
	Deactivate(ctx context.Context, roomId uuid.UUID) error
}
