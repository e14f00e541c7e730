package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("clinic-2024")
	require.NoError(t, err)
	assert.NotEqual(t, "clinic-2024", hash)

	ok, err := CheckPassword(hash, "clinic-2024")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "clinic-2025")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	_, err := CheckPassword("not-a-bcrypt-hash", "secret")
	assert.Error(t, err)
}
