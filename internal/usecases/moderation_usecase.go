package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/domain/repositories"
)

// ModerationUsecase implements the admin moderation transitions. Every
// state change and its audit entry commit in one transaction; a failed
// audit write rolls the state change back.
type ModerationUsecase struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.ProfileRepository
	auditRepo   repositories.AuditRepository
	uow         repositories.UnitOfWork
}

// NewModerationUsecase creates a new moderation usecase
func NewModerationUsecase(
	accountRepo repositories.AccountRepository,
	profileRepo repositories.ProfileRepository,
	auditRepo repositories.AuditRepository,
	uow repositories.UnitOfWork,
) *ModerationUsecase {
	return &ModerationUsecase{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		uow:         uow,
	}
}

// Suspend sets an account to suspended. Effective on the next
// authorization check; no token revocation is needed because the gate
// re-reads the row.
func (u *ModerationUsecase) Suspend(ctx context.Context, accountID, adminID uuid.UUID, reason string) error {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.UpdateStatus(txCtx, accountID, entities.StatusSuspended); err != nil {
			return err
		}
		return u.auditRepo.Append(txCtx, &entities.AuditEntry{
			ID:         uuid.New(),
			ActorID:    adminID,
			Action:     entities.AuditActionSuspend,
			TargetType: entities.AuditTargetAccount,
			TargetID:   accountID,
			Reason:     null.NewString(reason, reason != ""),
			PrevState:  null.StringFrom(string(account.Status)),
			NewState:   null.StringFrom(string(entities.StatusSuspended)),
			CreatedAt:  time.Now(),
		})
	})
}

// Activate is the inverse transition of Suspend.
func (u *ModerationUsecase) Activate(ctx context.Context, accountID, adminID uuid.UUID) error {
	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.UpdateStatus(txCtx, accountID, entities.StatusActive); err != nil {
			return err
		}
		return u.auditRepo.Append(txCtx, &entities.AuditEntry{
			ID:         uuid.New(),
			ActorID:    adminID,
			Action:     entities.AuditActionActivate,
			TargetType: entities.AuditTargetAccount,
			TargetID:   accountID,
			PrevState:  null.StringFrom(string(account.Status)),
			NewState:   null.StringFrom(string(entities.StatusActive)),
			CreatedAt:  time.Now(),
		})
	})
}

// ChangeRole overwrites an account's role and logs the before/after
// snapshot. The profile row, if any, is neither created nor removed.
func (u *ModerationUsecase) ChangeRole(ctx context.Context, accountID uuid.UUID, newRole entities.Role, adminID uuid.UUID) error {
	if !newRole.Valid() {
		return domainerrors.Validation("Invalid role")
	}

	account, err := u.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.accountRepo.UpdateRole(txCtx, accountID, newRole); err != nil {
			return err
		}
		return u.auditRepo.Append(txCtx, &entities.AuditEntry{
			ID:         uuid.New(),
			ActorID:    adminID,
			Action:     entities.AuditActionRoleChange,
			TargetType: entities.AuditTargetAccount,
			TargetID:   accountID,
			PrevState:  null.StringFrom(string(account.Role)),
			NewState:   null.StringFrom(string(newRole)),
			CreatedAt:  time.Now(),
		})
	})
}

// VerifyProfile applies an admin decision to a pending profile.
// Approved and rejected are terminal; no transition leaves them.
func (u *ModerationUsecase) VerifyProfile(ctx context.Context, accountID, adminID uuid.UUID, decision entities.VerificationStatus, notes string) error {
	if !decision.Decision() {
		return domainerrors.Validation("Decision must be approved or rejected")
	}

	profile, err := u.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return err
	}
	if profile.VerificationStatus != entities.VerificationPending {
		return domainerrors.ErrTerminalState
	}

	action := entities.AuditActionProfileVerify
	if decision == entities.VerificationRejected {
		action = entities.AuditActionProfileReject
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.profileRepo.UpdateVerification(txCtx, accountID, decision, adminID, time.Now(), notes); err != nil {
			return err
		}
		return u.auditRepo.Append(txCtx, &entities.AuditEntry{
			ID:         uuid.New(),
			ActorID:    adminID,
			Action:     action,
			TargetType: entities.AuditTargetProfile,
			TargetID:   accountID,
			Reason:     null.NewString(notes, notes != ""),
			PrevState:  null.StringFrom(string(entities.VerificationPending)),
			NewState:   null.StringFrom(string(decision)),
			CreatedAt:  time.Now(),
		})
	})
}

// ListAccounts returns accounts matching the filter for the admin view.
func (u *ModerationUsecase) ListAccounts(ctx context.Context, filter repositories.AccountFilter) ([]*entities.Account, error) {
	return u.accountRepo.List(ctx, filter)
}

// PendingProfiles returns the verification queue, optionally by kind.
func (u *ModerationUsecase) PendingProfiles(ctx context.Context, kind entities.ProfileKind) ([]*entities.Profile, error) {
	return u.profileRepo.ListByStatus(ctx, kind, entities.VerificationPending)
}

// AuditTrail returns audit entries, scoped to a target when given.
func (u *ModerationUsecase) AuditTrail(ctx context.Context, targetID *uuid.UUID, limit int) ([]*entities.AuditEntry, error) {
	if targetID != nil {
		return u.auditRepo.ListByTarget(ctx, *targetID)
	}
	return u.auditRepo.List(ctx, limit)
}

// Stats summarizes account and verification counts for the dashboard.
type Stats struct {
	ActiveAccounts    int64 `json:"activeAccounts"`
	SuspendedAccounts int64 `json:"suspendedAccounts"`
	BusinessAccounts  int64 `json:"businessAccounts"`
	CommunityAccounts int64 `json:"communityAccounts"`
	PendingProfiles   int64 `json:"pendingProfiles"`
}

// GetStats returns dashboard counts.
func (u *ModerationUsecase) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.ActiveAccounts, err = u.accountRepo.CountByStatus(ctx, entities.StatusActive); err != nil {
		return nil, err
	}
	if stats.SuspendedAccounts, err = u.accountRepo.CountByStatus(ctx, entities.StatusSuspended); err != nil {
		return nil, err
	}
	if stats.BusinessAccounts, err = u.accountRepo.CountByRole(ctx, entities.RoleBusiness); err != nil {
		return nil, err
	}
	if stats.CommunityAccounts, err = u.accountRepo.CountByRole(ctx, entities.RoleCommunity); err != nil {
		return nil, err
	}
	if stats.PendingProfiles, err = u.profileRepo.CountByStatus(ctx, entities.VerificationPending); err != nil {
		return nil, err
	}

	return stats, nil
}
