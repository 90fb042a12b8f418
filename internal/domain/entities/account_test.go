package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoleValidAndRegistrable(t *testing.T) {
	require.True(t, RoleAdmin.Valid())
	require.False(t, RoleAdmin.Registrable())

	for _, role := range RegistrableRoles {
		require.True(t, role.Valid())
		require.True(t, role.Registrable())
	}

	require.False(t, Role("superuser").Valid())
	require.False(t, Role("").Registrable())
}

func TestKindForRole(t *testing.T) {
	kind, ok := KindForRole(RoleBusiness)
	require.True(t, ok)
	require.Equal(t, ProfileKindBusiness, kind)

	kind, ok = KindForRole(RoleCommunity)
	require.True(t, ok)
	require.Equal(t, ProfileKindCommunity, kind)

	_, ok = KindForRole(RoleIndividual)
	require.False(t, ok)
	_, ok = KindForRole(RoleAdmin)
	require.False(t, ok)
}

func TestVerificationStatusDecision(t *testing.T) {
	require.True(t, VerificationApproved.Decision())
	require.True(t, VerificationRejected.Decision())
	require.False(t, VerificationPending.Decision())
	require.False(t, VerificationStatus("maybe").Decision())
}

func TestAccountSuspended(t *testing.T) {
	require.False(t, (&Account{Status: StatusActive}).Suspended())
	require.True(t, (&Account{Status: StatusSuspended}).Suspended())
}
