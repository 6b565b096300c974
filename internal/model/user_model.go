package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
	// Verified by the token issuer, never read by this service.
	PasswordHash string  `gorm:"type:varchar(255)"`
	AvatarURL    *string `gorm:"type:text"`

	IsOnline           bool      `gorm:"default:false"`
	Status             string    `gorm:"type:varchar(20);not null;default:'offline'"`
	LastSeen           time.Time `gorm:"autoCreateTime"`
	ActiveSessionCount int       `gorm:"default:0"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
