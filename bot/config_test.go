package bot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, 12, c.Cleanup.LevelThreshold)
	assert.Equal(t, time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), c.Cleanup.Cutoff)
	assert.Len(t, c.Cleanup.ExcludedRoles, 4)
	assert.Equal(t, 3*time.Minute, c.Cleanup.ConfirmTimeout.Duration())
	assert.Equal(t, 30*time.Second, c.Leaderboard.Timeout.Duration())
	assert.Equal(t, "https://arcane.bot/api", c.Leaderboard.BaseURL)
	assert.ErrorIs(t, c.Validate(), ErrNoToken)
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[auth]
discord = "file-token"

[bot]
commands_guild_id = 123
no_sync_commands = true

[cleanup]
level_threshold = 20
cutoff = 2025-01-01T00:00:00Z
excluded_roles = [1, 2]
confirm_timeout = "30s"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("TOKEN", "env-token")
	t.Setenv("ARCANE_BOT_AUTH_TOKEN", "arcane")
	t.Setenv("CLEANUP_PREVIEW_SIZE", "5")

	c, err := ReadConfig(path)
	require.NoError(t, err)

	// the environment overrides the file
	assert.Equal(t, "env-token", c.Auth.Discord)
	assert.Equal(t, "arcane", c.Auth.Leaderboard)

	assert.Equal(t, discord.GuildID(123), c.Bot.CommandsGuildID)
	assert.True(t, c.Bot.NoSyncCommands)
	assert.Equal(t, 20, c.Cleanup.LevelThreshold)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), c.Cleanup.Cutoff.UTC())
	assert.Equal(t, []discord.RoleID{1, 2}, c.Cleanup.ExcludedRoles)
	assert.Equal(t, 30*time.Second, c.Cleanup.ConfirmTimeout.Duration())
	assert.Equal(t, 5, c.Cleanup.PreviewSize)

	// untouched values keep their defaults
	assert.Equal(t, 5, c.Cleanup.MaxErrorDetails)
	assert.Equal(t, "over .gg/peretas", c.Bot.Activity)

	assert.NoError(t, c.Validate())
}

func TestReadConfigMissingFile(t *testing.T) {
	t.Setenv("TOKEN", "env-token")
	t.Setenv("CLEANUP_EXCLUDED_ROLES", "10,20")

	c, err := ReadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, "env-token", c.Auth.Discord)
	assert.Equal(t, []discord.RoleID{10, 20}, c.Cleanup.ExcludedRoles)
	assert.Equal(t, 12, c.Cleanup.LevelThreshold)
}

func TestReadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[auth\n"), 0o600))

	_, err := ReadConfig(path)
	assert.Error(t, err)
}
