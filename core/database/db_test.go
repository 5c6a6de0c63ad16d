package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB opens an in-memory SQLite database as the package-level handle
func setupTestDB(t *testing.T) func() {
	require.NoError(t, Open(":memory:"))
	return Close
}

func TestGuildPrefix_Unset(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	assert.Nil(t, FetchGuildPrefix("100"))
}

func TestGuildPrefix_SetAndReplace(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, SetGuildPrefix("100", "?"))
	prefix := FetchGuildPrefix("100")
	require.NotNil(t, prefix)
	assert.Equal(t, "?", *prefix)

	require.NoError(t, SetGuildPrefix("100", "$$"))
	prefix = FetchGuildPrefix("100")
	require.NotNil(t, prefix)
	assert.Equal(t, "$$", *prefix)

	assert.Nil(t, FetchGuildPrefix("200"), "other guilds keep the default")
}

func TestGuildPrefix_Clear(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, SetGuildPrefix("100", "?"))
	require.NoError(t, ClearGuildPrefix("100"))
	assert.Nil(t, FetchGuildPrefix("100"))
}

func TestUserRole(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	assert.Equal(t, RoleUser, FetchUserRole("42"), "unknown users default to RoleUser")

	require.NoError(t, SetUserRole("42", RoleAdmin))
	assert.Equal(t, RoleAdmin, FetchUserRole("42"))

	require.NoError(t, SetUserRole("42", RoleUser))
	assert.Equal(t, RoleUser, FetchUserRole("42"))
}

func TestClosedDatabase(t *testing.T) {
	Close()

	assert.Nil(t, FetchGuildPrefix("100"))
	assert.Equal(t, RoleUser, FetchUserRole("42"))
	assert.Error(t, SetGuildPrefix("100", "?"))
	assert.Error(t, SetUserRole("42", RoleAdmin))
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "user", RoleUser.String())
}
