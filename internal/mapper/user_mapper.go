package mapper

import (
	"realtime-chat-be/internal/entity"
	"realtime-chat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:                 u.Id,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		AvatarURL:          u.AvatarURL,
		IsOnline:           u.IsOnline,
		Status:             entity.PresenceStatus(u.Status),
		LastSeen:           u.LastSeen,
		ActiveSessionCount: u.ActiveSessionCount,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:                 u.Id,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		AvatarURL:          u.AvatarURL,
		IsOnline:           u.IsOnline,
		Status:             string(u.Status),
		LastSeen:           u.LastSeen,
		ActiveSessionCount: u.ActiveSessionCount,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
