package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := LoadConfig("does-not-exist.json")
	require.NoError(t, err)
	assert.Equal(t, 3, config.MaxRounds)
	assert.Equal(t, 3, config.TurnsPerRound)
	assert.Equal(t, 60, config.RoundSeconds)
	assert.Equal(t, 5, config.RevealSeconds)
	assert.Equal(t, 15, config.MaxNameLength)
	assert.Equal(t, 30, config.HistoryRetentionDays)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port":"9000","max_rounds":5,"db_host":"db","words":["cat","dog"]}`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", config.Port)
	assert.Equal(t, 5, config.MaxRounds)
	assert.Equal(t, 3, config.TurnsPerRound, "unset fields keep their defaults")
	assert.Equal(t, "db", config.DBHost)
	assert.Equal(t, "cache:6379", config.RedisAddr)
	assert.Equal(t, 2, config.RedisDB)
	assert.Equal(t, []string{"cat", "dog"}, config.Words)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o600))
	// Setenv restores the original value afterwards; unset so .env is not shadowed.
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")

	config, err := LoadConfig("config.json")
	require.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port":`), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
