package service

import (
	"context"
	"time"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/repository/specification"
	"realtime-chat-be/internal/repository/unitofwork"
	"realtime-chat-be/pkg/events"

	"github.com/google/uuid"
)

type IPresenceService interface {
	// SessionConnected records one more live connection for the user. It
	// returns true when this was the first session, i.e. the user just came
	// online and a global presence broadcast is due.
	SessionConnected(ctx context.Context, userId uuid.UUID) (bool, error)

	// SessionDisconnected records one connection going away. It returns true
	// only when the last session closed; a user chatting from two devices
	// stays online until both are gone.
	SessionDisconnected(ctx context.Context, userId uuid.UUID) (bool, error)

	UpdateStatus(ctx context.Context, userId uuid.UUID, status entity.PresenceStatus) error
	GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error)
}

type presenceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewPresenceService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService) IPresenceService {
	return &presenceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (p *presenceService) SessionConnected(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.UserRepository().IncrementSessionCount(ctx, userId, 1)
	if err != nil {
		return false, apperror.Internal("failed to increment session count", err)
	}

	if count != 1 {
		return false, nil
	}

	if err := uow.UserRepository().UpdatePresence(ctx, userId, entity.PresenceOnline, time.Now()); err != nil {
		return false, apperror.Internal("failed to set user online", err)
	}
	p.publisherService.Publish(ctx, events.NewPresenceChangedEvent(userId, string(entity.PresenceOnline)))
	return true, nil
}

func (p *presenceService) SessionDisconnected(ctx context.Context, userId uuid.UUID) (bool, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.UserRepository().IncrementSessionCount(ctx, userId, -1)
	if err != nil {
		return false, apperror.Internal("failed to decrement session count", err)
	}

	if count != 0 {
		return false, nil
	}

	if err := uow.UserRepository().UpdatePresence(ctx, userId, entity.PresenceOffline, time.Now()); err != nil {
		return false, apperror.Internal("failed to set user offline", err)
	}
	p.publisherService.Publish(ctx, events.NewPresenceChangedEvent(userId, string(entity.PresenceOffline)))
	return true, nil
}

func (p *presenceService) UpdateStatus(ctx context.Context, userId uuid.UUID, status entity.PresenceStatus) error {
	if !status.Valid() {
		return apperror.InvalidInput("unknown presence status")
	}

	uow := p.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdatePresence(ctx, userId, status, time.Now()); err != nil {
		return apperror.Internal("failed to update presence status", err)
	}
	p.publisherService.Publish(ctx, events.NewPresenceChangedEvent(userId, string(status)))
	return nil
}

func (p *presenceService) GetUser(ctx context.Context, userId uuid.UUID) (*entity.User, error) {
	uow := p.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}
