package repositories

import (
	"context"

	"github.com/google/uuid"
	"ecohub.backend/internal/domain/entities"
)

// AccountFilter narrows admin account listings.
type AccountFilter struct {
	Search string
	Role   entities.Role
	Status entities.AccountStatus
}

// AccountUpdate carries the allow-listed self-service fields. Nil
// pointers leave the column untouched.
type AccountUpdate struct {
	Name      *string
	Phone     *string
	AvatarURL *string
}

// AccountRepository defines account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *entities.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error)
	GetByEmail(ctx context.Context, email string) (*entities.Account, error)
	Update(ctx context.Context, id uuid.UUID, update AccountUpdate) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error
	List(ctx context.Context, filter AccountFilter) ([]*entities.Account, error)
	CountByStatus(ctx context.Context, status entities.AccountStatus) (int64, error)
	CountByRole(ctx context.Context, role entities.Role) (int64, error)
}
