package utils_test

import (
	"strings"
	"testing"

	"github.com/minibank/minibank/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Format(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("test_password_123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), "unexpected hash prefix: %s", hash)
	assert.NotContains(t, hash, "test_password_123")
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()
	h1, err := utils.HashPassword("same_password")
	require.NoError(t, err)
	h2, err := utils.HashPassword("same_password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "per-password salt must make identical passwords hash differently")
}

func TestCheckPasswordHash(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("correct_password")
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash("correct_password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong_password", hash))
}

func TestCheckPasswordHash_Unicode(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("пароль123")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("пароль123", hash))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	t.Parallel()
	assert.False(t, utils.CheckPasswordHash("password", "not_a_valid_hash"))
	assert.False(t, utils.CheckPasswordHash("password", "$argon2id$v=19$garbage"))
	assert.False(t, utils.CheckPasswordHash("password", ""))
}
