package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile shares its primary key with the owning account row.
type Profile struct {
	AccountID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind               string     `gorm:"type:varchar(50);not null"`
	OrgName            string     `gorm:"type:varchar(150);not null"`
	RegistrationNo     *string    `gorm:"type:varchar(100)"`
	Address            *string    `gorm:"type:varchar(500)"`
	Sector             *string    `gorm:"type:varchar(100)"`
	VerificationStatus string     `gorm:"type:varchar(50);not null;default:'pending'"`
	VerifiedBy         *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt         *time.Time `gorm:"type:timestamp"`
	Notes              *string    `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
