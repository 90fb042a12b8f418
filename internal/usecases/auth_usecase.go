package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/domain/repositories"
	"ecohub.backend/pkg/crypto"
	"ecohub.backend/pkg/jwt"
)

// AuthUsecase handles registration, login and token resolution.
type AuthUsecase struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.ProfileRepository
	uow         repositories.UnitOfWork
	jwtService  *jwt.Service
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.Service,
) *AuthUsecase {
	return &AuthUsecase{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		uow:         uow,
		jwtService:  jwtService,
	}
}

// Register creates an account and, for business/community roles with a
// profile payload, the attached pending profile in the same transaction.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	role := input.Role
	if role == "" {
		role = entities.RoleIndividual
	}
	if !role.Registrable() {
		return nil, domainerrors.Validation("Invalid role")
	}

	// Duplicate check before any write.
	_, err := u.accountRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Validation("Email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &entities.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		Phone:        null.NewString(input.Phone, input.Phone != ""),
		PasswordHash: passwordHash,
		Role:         role,
		Status:       entities.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var profile *entities.Profile
	if kind, ok := entities.KindForRole(role); ok && input.Profile != nil {
		if input.Profile.OrgName == "" {
			return nil, domainerrors.Validation("Profile organization name is required")
		}
		profile = &entities.Profile{
			AccountID:          account.ID,
			Kind:               kind,
			OrgName:            input.Profile.OrgName,
			RegistrationNo:     null.NewString(input.Profile.RegistrationNo, input.Profile.RegistrationNo != ""),
			Address:            null.NewString(input.Profile.Address, input.Profile.Address != ""),
			Sector:             null.NewString(input.Profile.Sector, input.Profile.Sector != ""),
			VerificationStatus: entities.VerificationPending,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.Create(txCtx, account); err != nil {
			return err
		}
		if profile != nil {
			return u.profileRepo.Create(txCtx, profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:   token,
		Account: account,
		Profile: profile,
	}, nil
}

// Login authenticates credentials and returns a fresh token. A correct
// password on a suspended account is still rejected.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	account, err := u.accountRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if account.Suspended() {
		return nil, domainerrors.ErrAccountSuspended
	}

	if err := u.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		return nil, err
	}
	account.LastLoginAt = null.TimeFrom(time.Now())

	token, err := u.jwtService.GenerateToken(account.ID, string(account.Role))
	if err != nil {
		return nil, err
	}

	profile, err := u.profileForAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:   token,
		Account: account,
		Profile: profile,
	}, nil
}

// VerifyToken resolves a bearer token to the live account row. Status is
// checked against the current row, not the token claims, so suspension
// takes effect on the very next request.
func (u *AuthUsecase) VerifyToken(ctx context.Context, tokenString string) (*entities.Account, error) {
	claims, err := u.jwtService.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrTokenInvalid
	}

	account, err := u.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrTokenInvalid
		}
		return nil, err
	}

	if account.Suspended() {
		return nil, domainerrors.ErrAccountSuspended
	}

	return account, nil
}

// CurrentAccount returns the account, its profile (if any) and an
// impact snapshot for the verify endpoint.
func (u *AuthUsecase) CurrentAccount(ctx context.Context, id uuid.UUID) (*entities.Account, *entities.Profile, *entities.ImpactSnapshot, error) {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}

	profile, err := u.profileForAccount(ctx, account)
	if err != nil {
		return nil, nil, nil, err
	}

	snapshot := &entities.ImpactSnapshot{
		MemberSince: account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}
	if profile != nil {
		snapshot.ProfileVerification = string(profile.VerificationStatus)
	}

	return account, profile, snapshot, nil
}

// UpdateProfile applies the allow-listed account and profile fields.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateAccountInput) (*entities.Account, *entities.Profile, error) {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	update := repositories.AccountUpdate{
		Name:      input.Name,
		Phone:     input.Phone,
		AvatarURL: input.AvatarURL,
	}
	if update.Name != nil && *update.Name == "" {
		return nil, nil, domainerrors.Validation("Name cannot be empty")
	}
	if err := u.accountRepo.Update(ctx, id, update); err != nil {
		return nil, nil, err
	}

	if input.Profile != nil {
		if _, ok := entities.KindForRole(account.Role); !ok {
			return nil, nil, domainerrors.Validation("Account has no organization profile")
		}
		profileUpdate := repositories.ProfileUpdate{}
		if input.Profile.OrgName != "" {
			profileUpdate.OrgName = &input.Profile.OrgName
		}
		if input.Profile.RegistrationNo != "" {
			profileUpdate.RegistrationNo = &input.Profile.RegistrationNo
		}
		if input.Profile.Address != "" {
			profileUpdate.Address = &input.Profile.Address
		}
		if input.Profile.Sector != "" {
			profileUpdate.Sector = &input.Profile.Sector
		}
		if err := u.profileRepo.Update(ctx, id, profileUpdate); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, err
		}
	}

	account, err = u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	profile, err := u.profileForAccount(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}

// ChangePassword rotates the password after re-verifying the current one.
func (u *AuthUsecase) ChangePassword(ctx context.Context, id uuid.UUID, input *entities.ChangePasswordInput) error {
	account, err := u.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, account.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return u.accountRepo.UpdatePassword(ctx, id, passwordHash)
}

func (u *AuthUsecase) profileForAccount(ctx context.Context, account *entities.Account) (*entities.Profile, error) {
	if _, ok := entities.KindForRole(account.Role); !ok {
		return nil, nil
	}
	profile, err := u.profileRepo.GetByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}
