package implementation

import (
	"context"
	"encoding/json"
	"errors"

	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/mapper"
	"realtime-chat-be/internal/model"
	"realtime-chat-be/internal/pkg/apperror"
	"realtime-chat-be/internal/repository/contract"
	"realtime-chat-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewRoomRepository(db *gorm.DB) contract.RoomRepository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *RoomRepositoryImpl) Create(ctx context.Context, room *entity.Room) error {
	m := r.mapper.ToModel(room)
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Wrap(apperror.KindInvalidOperation, "room already exists for this pair", err)
		}
		return err
	}
	*room = *r.mapper.ToEntity(m)
	return nil
}

func (r *RoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	var m model.Room
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	var models []*model.Room
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Room, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *RoomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Room{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RoomRepositoryImpl) AddParticipant(ctx context.Context, roomId, userId uuid.UUID) error {
	p := model.RoomParticipant{RoomId: roomId, UserId: userId}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&p).Error
}

func (r *RoomRepositoryImpl) RemoveParticipant(ctx context.Context, roomId, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomId, userId).
		Delete(&model.RoomParticipant{}).Error
}

func (r *RoomRepositoryImpl) CountParticipants(ctx context.Context, roomId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RoomParticipant{}).
		Where("room_id = ?", roomId).
		Count(&count).Error
	return count, err
}

func (r *RoomRepositoryImpl) UpdateFields(ctx context.Context, roomId uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomId).
		Updates(fields).Error
}

func (r *RoomRepositoryImpl) SetLastMessage(ctx context.Context, roomId uuid.UUID, preview *entity.LastMessagePreview) error {
	data, err := json.Marshal(preview)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomId).
		Update("last_message", data).Error
}

func (r *RoomRepositoryImpl) Deactivate(ctx context.Context, roomId uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Room{}).
		Where("id = ?", roomId).
		Update("active", false).Error
}
