package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ecohub.backend/internal/domain/entities"
	"ecohub.backend/internal/infrastructure/models"
)

// AuditRepository implements the append-only audit trail
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Append writes one audit entry. Callers run this inside the same
// transaction as the state change it records.
func (r *AuditRepository) Append(ctx context.Context, entry *entities.AuditEntry) error {
	m := &models.AuditEntry{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		Action:     string(entry.Action),
		TargetType: string(entry.TargetType),
		TargetID:   entry.TargetID,
		Reason:     entry.Reason.Ptr(),
		PrevState:  entry.PrevState.Ptr(),
		NewState:   entry.NewState.Ptr(),
		CreatedAt:  entry.CreatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByTarget lists entries recorded against a target id
func (r *AuditRepository) ListByTarget(ctx context.Context, targetID uuid.UUID) ([]*entities.AuditEntry, error) {
	var entryModels []models.AuditEntry
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}
	return toAuditEntities(entryModels), nil
}

// List lists the most recent entries
func (r *AuditRepository) List(ctx context.Context, limit int) ([]*entities.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entryModels []models.AuditEntry
	err := GetDB(ctx, r.db).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entryModels).Error
	if err != nil {
		return nil, err
	}
	return toAuditEntities(entryModels), nil
}

func toAuditEntities(entryModels []models.AuditEntry) []*entities.AuditEntry {
	entries := make([]*entities.AuditEntry, 0, len(entryModels))
	for i := range entryModels {
		m := &entryModels[i]
		entries = append(entries, &entities.AuditEntry{
			ID:         m.ID,
			ActorID:    m.ActorID,
			Action:     entities.AuditAction(m.Action),
			TargetType: entities.AuditTargetType(m.TargetType),
			TargetID:   m.TargetID,
			Reason:     null.StringFromPtr(m.Reason),
			PrevState:  null.StringFromPtr(m.PrevState),
			NewState:   null.StringFromPtr(m.NewState),
			CreatedAt:  m.CreatedAt,
		})
	}
	return entries
}
