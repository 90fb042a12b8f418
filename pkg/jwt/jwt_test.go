package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	accountID := uuid.New()

	token, err := svc.GenerateToken(accountID, "business")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, accountID, claims.AccountID)
	require.Equal(t, "business", claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "individual")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).GenerateToken(uuid.New(), "individual")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiry(t *testing.T) {
	require.Equal(t, 24*time.Hour, NewService("s", 24*time.Hour).Expiry())
}
