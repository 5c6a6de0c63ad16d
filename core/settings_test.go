package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config-test.json")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	return file
}

func TestReadSettings(t *testing.T) {
	file := writeConfig(t, `{
		"Development": true,
		"AuthToken": "token",
		"CommandPrefix": "?",
		"Database": ":memory:",
		"OwnerIds": ["1", "2"],
		"CommandTimeout": "5s",
		"Cooldown": "2s",
		"CooldownBurst": 3
	}`)

	settings, err := ReadSettings(file)
	require.NoError(t, err)

	assert.True(t, settings.IsDevelopment())
	assert.Equal(t, "token", settings.AuthToken())
	assert.Equal(t, "?", settings.CommandPrefix())
	assert.Equal(t, ":memory:", settings.Database())
	assert.Equal(t, []string{"1", "2"}, settings.OwnerIds())
	assert.Empty(t, settings.Blacklist())
	assert.Equal(t, 5*time.Second, settings.CommandTimeout())
	every, burst := settings.Cooldown()
	assert.Equal(t, 2*time.Second, every)
	assert.Equal(t, 3, burst)
}

func TestReadSettings_Defaults(t *testing.T) {
	settings, err := ReadSettings(writeConfig(t, `{"AuthToken": "token"}`))
	require.NoError(t, err)

	assert.Equal(t, "!", settings.CommandPrefix())
	assert.Equal(t, "gobot.db", settings.Database())
	assert.Zero(t, settings.CommandTimeout())
	every, burst := settings.Cooldown()
	assert.Zero(t, every)
	assert.Equal(t, 1, burst)
}

func TestReadSettings_EnvironmentOverride(t *testing.T) {
	t.Setenv("GOBOT_AUTHTOKEN", "from-env")

	settings, err := ReadSettings(writeConfig(t, `{"AuthToken": "from-file"}`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.AuthToken())
}

func TestReadSettings_MissingFile(t *testing.T) {
	_, err := ReadSettings(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
