package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
	"ecohub.backend/internal/domain/repositories"
)

func newModerationFixture() (*ModerationUsecase, *MockAccountRepository, *MockProfileRepository, *MockAuditRepository, *MockUnitOfWork) {
	accountRepo := new(MockAccountRepository)
	profileRepo := new(MockProfileRepository)
	auditRepo := new(MockAuditRepository)
	uow := new(MockUnitOfWork)
	return NewModerationUsecase(accountRepo, profileRepo, auditRepo, uow), accountRepo, profileRepo, auditRepo, uow
}

func TestModerationUsecase_Suspend_WritesAuditInTransaction(t *testing.T) {
	uc, accountRepo, _, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	target := activeAccount(entities.RoleIndividual, "correct horse")
	adminID := uuid.New()

	accountRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	accountRepo.On("UpdateStatus", ctx, target.ID, entities.StatusSuspended).Return(nil)
	auditRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.AuditEntry) bool {
		return e.Action == entities.AuditActionSuspend &&
			e.ActorID == adminID &&
			e.TargetID == target.ID &&
			e.TargetType == entities.AuditTargetAccount &&
			e.PrevState.String == "active" &&
			e.NewState.String == "suspended" &&
			e.Reason.String == "spam listings"
	})).Return(nil)

	require.NoError(t, uc.Suspend(ctx, target.ID, adminID, "spam listings"))
	auditRepo.AssertNumberOfCalls(t, "Append", 1)
	accountRepo.AssertExpectations(t)
}

func TestModerationUsecase_Suspend_FailedAuditRollsBack(t *testing.T) {
	uc, accountRepo, _, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	target := activeAccount(entities.RoleIndividual, "correct horse")
	adminID := uuid.New()

	accountRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	accountRepo.On("UpdateStatus", ctx, target.ID, entities.StatusSuspended).Return(nil)
	auditRepo.On("Append", ctx, mock.Anything).Return(domainerrors.ErrNotFound)

	require.Error(t, uc.Suspend(ctx, target.ID, adminID, ""))
}

func TestModerationUsecase_Suspend_UnknownTarget(t *testing.T) {
	uc, accountRepo, _, _, uow := newModerationFixture()
	ctx := context.Background()
	id := uuid.New()

	accountRepo.On("GetByID", ctx, id).Return(nil, domainerrors.ErrNotFound)

	require.ErrorIs(t, uc.Suspend(ctx, id, uuid.New(), ""), domainerrors.ErrNotFound)
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestModerationUsecase_Activate(t *testing.T) {
	uc, accountRepo, _, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	target := activeAccount(entities.RoleIndividual, "correct horse")
	target.Status = entities.StatusSuspended
	adminID := uuid.New()

	accountRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	accountRepo.On("UpdateStatus", ctx, target.ID, entities.StatusActive).Return(nil)
	auditRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.AuditEntry) bool {
		return e.Action == entities.AuditActionActivate &&
			e.PrevState.String == "suspended" &&
			e.NewState.String == "active"
	})).Return(nil)

	require.NoError(t, uc.Activate(ctx, target.ID, adminID))
	auditRepo.AssertExpectations(t)
}

func TestModerationUsecase_ChangeRole(t *testing.T) {
	uc, accountRepo, _, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	target := activeAccount(entities.RoleIndividual, "correct horse")
	adminID := uuid.New()

	require.ErrorIs(t, uc.ChangeRole(ctx, target.ID, entities.Role("superuser"), adminID), domainerrors.ErrInvalidInput)

	accountRepo.On("GetByID", ctx, target.ID).Return(target, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	accountRepo.On("UpdateRole", ctx, target.ID, entities.RoleCommunity).Return(nil)
	auditRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.AuditEntry) bool {
		return e.Action == entities.AuditActionRoleChange &&
			e.PrevState.String == "individual" &&
			e.NewState.String == "community"
	})).Return(nil)

	require.NoError(t, uc.ChangeRole(ctx, target.ID, entities.RoleCommunity, adminID))
	auditRepo.AssertExpectations(t)
}

func TestModerationUsecase_VerifyProfile_Approve(t *testing.T) {
	uc, _, profileRepo, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	accountID := uuid.New()
	adminID := uuid.New()
	profileRepo.On("GetByAccountID", ctx, accountID).Return(&entities.Profile{
		AccountID:          accountID,
		Kind:               entities.ProfileKindBusiness,
		OrgName:            "Circular Supply Co",
		VerificationStatus: entities.VerificationPending,
	}, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	profileRepo.On("UpdateVerification", ctx, accountID, entities.VerificationApproved, adminID, mock.AnythingOfType("time.Time"), "looks good").Return(nil)
	auditRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.AuditEntry) bool {
		return e.Action == entities.AuditActionProfileVerify &&
			e.TargetType == entities.AuditTargetProfile &&
			e.PrevState.String == "pending" &&
			e.NewState.String == "approved"
	})).Return(nil)

	require.NoError(t, uc.VerifyProfile(ctx, accountID, adminID, entities.VerificationApproved, "looks good"))
	auditRepo.AssertNumberOfCalls(t, "Append", 1)
}

func TestModerationUsecase_VerifyProfile_RejectUsesRejectAction(t *testing.T) {
	uc, _, profileRepo, auditRepo, uow := newModerationFixture()
	ctx := context.Background()

	accountID := uuid.New()
	adminID := uuid.New()
	profileRepo.On("GetByAccountID", ctx, accountID).Return(&entities.Profile{
		AccountID:          accountID,
		Kind:               entities.ProfileKindCommunity,
		OrgName:            "River Care",
		VerificationStatus: entities.VerificationPending,
	}, nil)
	uow.On("Do", ctx, mock.Anything).Return(nil)
	profileRepo.On("UpdateVerification", ctx, accountID, entities.VerificationRejected, adminID, mock.AnythingOfType("time.Time"), "missing registration").Return(nil)
	auditRepo.On("Append", ctx, mock.MatchedBy(func(e *entities.AuditEntry) bool {
		return e.Action == entities.AuditActionProfileReject &&
			e.NewState.String == "rejected" &&
			e.Reason.String == "missing registration"
	})).Return(nil)

	require.NoError(t, uc.VerifyProfile(ctx, accountID, adminID, entities.VerificationRejected, "missing registration"))
}

func TestModerationUsecase_VerifyProfile_TerminalStateAndBadDecision(t *testing.T) {
	uc, _, profileRepo, _, uow := newModerationFixture()
	ctx := context.Background()
	accountID := uuid.New()

	require.ErrorIs(t, uc.VerifyProfile(ctx, accountID, uuid.New(), entities.VerificationPending, ""), domainerrors.ErrInvalidInput)

	profileRepo.On("GetByAccountID", ctx, accountID).Return(&entities.Profile{
		AccountID:          accountID,
		VerificationStatus: entities.VerificationApproved,
	}, nil)

	require.ErrorIs(t, uc.VerifyProfile(ctx, accountID, uuid.New(), entities.VerificationRejected, ""), domainerrors.ErrTerminalState)
	uow.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
}

func TestModerationUsecase_AuditTrail(t *testing.T) {
	uc, _, _, auditRepo, _ := newModerationFixture()
	ctx := context.Background()

	targetID := uuid.New()
	scoped := []*entities.AuditEntry{{ID: uuid.New(), TargetID: targetID, CreatedAt: time.Now()}}
	recent := []*entities.AuditEntry{{ID: uuid.New(), CreatedAt: time.Now()}}

	auditRepo.On("ListByTarget", ctx, targetID).Return(scoped, nil)
	auditRepo.On("List", ctx, 50).Return(recent, nil)

	got, err := uc.AuditTrail(ctx, &targetID, 0)
	require.NoError(t, err)
	require.Equal(t, scoped, got)

	got, err = uc.AuditTrail(ctx, nil, 50)
	require.NoError(t, err)
	require.Equal(t, recent, got)
}

func TestModerationUsecase_GetStats(t *testing.T) {
	uc, accountRepo, profileRepo, _, _ := newModerationFixture()
	ctx := context.Background()

	accountRepo.On("CountByStatus", ctx, entities.StatusActive).Return(int64(10), nil)
	accountRepo.On("CountByStatus", ctx, entities.StatusSuspended).Return(int64(2), nil)
	accountRepo.On("CountByRole", ctx, entities.RoleBusiness).Return(int64(4), nil)
	accountRepo.On("CountByRole", ctx, entities.RoleCommunity).Return(int64(3), nil)
	profileRepo.On("CountByStatus", ctx, entities.VerificationPending).Return(int64(5), nil)

	stats, err := uc.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, &Stats{
		ActiveAccounts:    10,
		SuspendedAccounts: 2,
		BusinessAccounts:  4,
		CommunityAccounts: 3,
		PendingProfiles:   5,
	}, stats)
}

func TestModerationUsecase_ListAccounts(t *testing.T) {
	uc, accountRepo, _, _, _ := newModerationFixture()
	ctx := context.Background()

	filter := repositories.AccountFilter{Role: entities.RoleBusiness}
	want := []*entities.Account{activeAccount(entities.RoleBusiness, "correct horse")}
	accountRepo.On("List", ctx, filter).Return(want, nil)

	got, err := uc.ListAccounts(ctx, filter)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
