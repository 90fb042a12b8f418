package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sunlight and soil")
	require.NoError(t, err)
	require.NotEqual(t, "sunlight and soil", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.True(t, CheckPassword("sunlight and soil", hash))
	require.False(t, CheckPassword("Sunlight and soil", hash))
	require.False(t, CheckPassword("", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
