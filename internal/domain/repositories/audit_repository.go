package repositories

import (
	"context"

	"github.com/google/uuid"
	"ecohub.backend/internal/domain/entities"
)

// AuditRepository defines append-only audit trail operations. Entries
// are never updated or deleted.
type AuditRepository interface {
	Append(ctx context.Context, entry *entities.AuditEntry) error
	ListByTarget(ctx context.Context, targetID uuid.UUID) ([]*entities.AuditEntry, error)
	List(ctx context.Context, limit int) ([]*entities.AuditEntry, error)
}
