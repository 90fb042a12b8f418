package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Phone        *string    `gorm:"type:varchar(50)"`
	AvatarURL    *string    `gorm:"type:varchar(500)"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(50);not null;default:'individual'"`
	Status       string     `gorm:"type:varchar(50);not null;default:'active'"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Account) TableName() string {
	return "accounts"
}
