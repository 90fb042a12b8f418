package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry rows are append-only; there is no UpdatedAt or DeletedAt.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(50);not null"`
	TargetType string    `gorm:"type:varchar(50);not null"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason     *string   `gorm:"type:text"`
	PrevState  *string   `gorm:"type:varchar(100)"`
	NewState   *string   `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
}

func (AuditEntry) TableName() string {
	return "audit_entries"
}
