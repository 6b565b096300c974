package unitofwork

import (
	"context"

	"realtime-chat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RoomRepository() contract.RoomRepository
	MessageRepository() contract.MessageRepository
}
