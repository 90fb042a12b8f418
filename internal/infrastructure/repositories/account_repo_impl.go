package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	domainRepos "ecohub.backend/internal/domain/repositories"
	"ecohub.backend/internal/infrastructure/models"
)

// AccountRepository implements account data operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entities.Account) error {
	m := &models.Account{
		ID:           account.ID,
		Email:        account.Email,
		Name:         account.Name,
		Phone:        account.Phone.Ptr(),
		AvatarURL:    account.AvatarURL.Ptr(),
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		Status:       string(account.Status),
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// GetByEmail gets an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entities.Account, error) {
	var m models.Account
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toAccountEntity(&m), nil
}

// Update writes the allow-listed self-service fields. Only columns with
// a non-nil pointer in the update are touched.
func (r *AccountRepository) Update(ctx context.Context, id uuid.UUID, update domainRepos.AccountUpdate) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *AccountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

// UpdateLastLogin stamps a successful login
func (r *AccountRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.updateColumns(ctx, id, map[string]interface{}{
		"last_login_at": now,
		"updated_at":    now,
	})
}

// UpdateStatus flips the lifecycle state
func (r *AccountRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.AccountStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now(),
	})
}

// UpdateRole overwrites the role. The profile row, if any, is left alone.
func (r *AccountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"role":       string(role),
		"updated_at": time.Now(),
	})
}

// List lists accounts with optional search and role/status filters
func (r *AccountRepository) List(ctx context.Context, filter domainRepos.AccountFilter) ([]*entities.Account, error) {
	var accountModels []models.Account
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entities.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, toAccountEntity(&accountModels[i]))
	}
	return accounts, nil
}

// CountByStatus counts accounts in a lifecycle state
func (r *AccountRepository) CountByStatus(ctx context.Context, status entities.AccountStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Account{}).Where("status = ?", string(status)).Count(&count).Error
	return count, err
}

// CountByRole counts accounts holding a role
func (r *AccountRepository) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Account{}).Where("role = ?", string(role)).Count(&count).Error
	return count, err
}

func (r *AccountRepository) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toAccountEntity(m *models.Account) *entities.Account {
	return &entities.Account{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Phone:        null.StringFromPtr(m.Phone),
		AvatarURL:    null.StringFromPtr(m.AvatarURL),
		PasswordHash: m.PasswordHash,
		Role:         entities.Role(m.Role),
		Status:       entities.AccountStatus(m.Status),
		LastLoginAt:  null.TimeFromPtr(m.LastLoginAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
