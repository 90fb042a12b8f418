package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"ecohub.backend/internal/domain/entities"
	domainerrors "ecohub.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitsAllWrites(t *testing.T) {
	db := newTestDB(t)
	createAccountTable(t, db)
	createAuditTable(t, db)

	accountRepo := NewAccountRepository(db)
	auditRepo := NewAuditRepository(db)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	target := newAccount("target@ecohub.org", entities.RoleIndividual)
	require.NoError(t, accountRepo.Create(ctx, target))

	actorID := uuid.New()
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if err := accountRepo.UpdateStatus(txCtx, target.ID, entities.StatusSuspended); err != nil {
			return err
		}
		return auditRepo.Append(txCtx, &entities.AuditEntry{
			ID:         uuid.New(),
			ActorID:    actorID,
			Action:     entities.AuditActionSuspend,
			TargetType: entities.AuditTargetAccount,
			TargetID:   target.ID,
			PrevState:  null.StringFrom("active"),
			NewState:   null.StringFrom("suspended"),
			CreatedAt:  time.Now(),
		})
	})
	require.NoError(t, err)

	got, err := accountRepo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusSuspended, got.Status)

	entries, err := auditRepo.ListByTarget(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	createAccountTable(t, db)

	accountRepo := NewAccountRepository(db)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	target := newAccount("rollback@ecohub.org", entities.RoleIndividual)
	require.NoError(t, accountRepo.Create(ctx, target))

	boom := errors.New("boom")
	err := uow.Do(ctx, func(txCtx context.Context) error {
		if err := accountRepo.UpdateStatus(txCtx, target.ID, entities.StatusSuspended); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := accountRepo.GetByID(ctx, target.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusActive, got.Status)
}

func TestGetDB_FallsBackWithoutTransaction(t *testing.T) {
	db := newTestDB(t)
	createAccountTable(t, db)
	repo := NewAccountRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
