package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"ecohub.backend/internal/domain/entities"
)

// ProfileUpdate carries the allow-listed organization fields. Nil
// pointers leave the column untouched.
type ProfileUpdate struct {
	OrgName        *string
	RegistrationNo *string
	Address        *string
	Sector         *string
}

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.Profile, error)
	Update(ctx context.Context, accountID uuid.UUID, update ProfileUpdate) error
	UpdateVerification(ctx context.Context, accountID uuid.UUID, status entities.VerificationStatus, verifiedBy uuid.UUID, verifiedAt time.Time, notes string) error
	ListByStatus(ctx context.Context, kind entities.ProfileKind, status entities.VerificationStatus) ([]*entities.Profile, error)
	CountByStatus(ctx context.Context, status entities.VerificationStatus) (int64, error)
}
