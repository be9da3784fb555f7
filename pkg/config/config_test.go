package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, styles, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Storage.Driver)
	assert.Equal(t, filepath.Join(dir, "todo.db"), cfg.Storage.DSN)
	assert.Equal(t, "todos", cfg.Storage.Key)
	assert.Equal(t, time.Second, cfg.Engine.TickInterval)
	assert.Equal(t, time.Minute, cfg.Engine.ExpiryInterval)
	assert.Zero(t, cfg.DefaultTimerMinutes, "new tasks get no timer unless configured")
	assert.NotEmpty(t, cfg.KeyMap)
	assert.Equal(t, DefaultStyles(), styles)

	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "styles.json"))
}

func TestLoadReadsFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
		"storage": {"driver": "FILE", "dsn": "` + filepath.Join(dir, "todos.json") + `"},
		"engine": {"tick_interval": "250ms"},
		"default_timer_minutes": 25,
		"keymap": {"QuitApp": "ctrl+q"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.TickInterval)
	assert.Equal(t, time.Minute, cfg.Engine.ExpiryInterval)
	assert.Equal(t, 25, cfg.DefaultTimerMinutes)
	assert.Equal(t, "ctrl+q", cfg.KeyMap["quitapp"])
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("TODOTIMER_STORAGE_DRIVER", "postgres")
	t.Setenv("TODOTIMER_STORAGE_DSN", "postgres://localhost/todos?sslmode=disable")

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/todos?sslmode=disable", cfg.Storage.DSN)
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

	_, _, err := Load(path)
	assert.Error(t, err)
}
