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

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := &models.Profile{
		AccountID:          profile.AccountID,
		Kind:               string(profile.Kind),
		OrgName:            profile.OrgName,
		RegistrationNo:     profile.RegistrationNo.Ptr(),
		Address:            profile.Address.Ptr(),
		Sector:             profile.Sector.Ptr(),
		VerificationStatus: string(profile.VerificationStatus),
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByAccountID gets the profile attached to an account
func (r *ProfileRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*entities.Profile, error) {
	var m models.Profile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("account_id = ?", accountID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// Update writes the allow-listed organization fields
func (r *ProfileRepository) Update(ctx context.Context, accountID uuid.UUID, update domainRepos.ProfileUpdate) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if update.OrgName != nil {
		updates["org_name"] = *update.OrgName
	}
	if update.RegistrationNo != nil {
		updates["registration_no"] = *update.RegistrationNo
	}
	if update.Address != nil {
		updates["address"] = *update.Address
	}
	if update.Sector != nil {
		updates["sector"] = *update.Sector
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("account_id = ?", accountID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateVerification writes an admin decision onto the profile
func (r *ProfileRepository) UpdateVerification(ctx context.Context, accountID uuid.UUID, status entities.VerificationStatus, verifiedBy uuid.UUID, verifiedAt time.Time, notes string) error {
	updates := map[string]interface{}{
		"verification_status": string(status),
		"verified_by":         verifiedBy,
		"verified_at":         verifiedAt,
		"updated_at":          time.Now(),
	}
	if notes != "" {
		updates["notes"] = notes
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("account_id = ?", accountID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByStatus lists profiles in a verification state, optionally
// filtered by kind
func (r *ProfileRepository) ListByStatus(ctx context.Context, kind entities.ProfileKind, status entities.VerificationStatus) ([]*entities.Profile, error) {
	var profileModels []models.Profile
	query := GetDB(ctx, r.db).WithContext(ctx).Where("verification_status = ?", string(status)).Order("created_at ASC")
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	profiles := make([]*entities.Profile, 0, len(profileModels))
	for i := range profileModels {
		profiles = append(profiles, toProfileEntity(&profileModels[i]))
	}
	return profiles, nil
}

// CountByStatus counts profiles in a verification state
func (r *ProfileRepository) CountByStatus(ctx context.Context, status entities.VerificationStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Profile{}).Where("verification_status = ?", string(status)).Count(&count).Error
	return count, err
}

func toProfileEntity(m *models.Profile) *entities.Profile {
	return &entities.Profile{
		AccountID:          m.AccountID,
		Kind:               entities.ProfileKind(m.Kind),
		OrgName:            m.OrgName,
		RegistrationNo:     null.StringFromPtr(m.RegistrationNo),
		Address:            null.StringFromPtr(m.Address),
		Sector:             null.StringFromPtr(m.Sector),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		VerifiedBy:         m.VerifiedBy,
		VerifiedAt:         null.TimeFromPtr(m.VerifiedAt),
		Notes:              null.StringFromPtr(m.Notes),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
