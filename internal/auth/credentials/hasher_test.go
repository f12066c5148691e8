package credentials

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UduakOkonah/coopconnect/internal/account"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestMatchPassword_Local(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	a, err := account.NewLocal("A", "a@x.com", hash, account.RoleUser)
	require.NoError(t, err)

	assert.True(t, MatchPassword("secret1", a))
	assert.False(t, MatchPassword("wrong", a))
	assert.False(t, MatchPassword("", a))
}

func TestMatchPassword_NonLocalNeverMatches(t *testing.T) {
	// Even a real hash on the row must not authenticate once the
	// provider is not local.
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	a, err := account.NewExternal("A", "a@x.com", "google-sub-1", hash, account.RoleUser)
	require.NoError(t, err)

	assert.False(t, MatchPassword("secret1", a))
}

func TestMatchPassword_NoStoredHash(t *testing.T) {
	a, err := account.NewLocal("A", "a@x.com", "placeholder", account.RoleUser)
	require.NoError(t, err)
	a.PasswordHash = sql.NullString{}

	assert.False(t, MatchPassword("anything", a))
}

func TestMatchPassword_NilAccount(t *testing.T) {
	assert.False(t, MatchPassword("anything", nil))
}

func TestUnusablePassword(t *testing.T) {
	hash, err := UnusablePassword()
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	other, err := UnusablePassword()
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}
