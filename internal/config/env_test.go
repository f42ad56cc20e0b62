package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		// Setenv registers the restore on cleanup.
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	unsetEnv(t,
		"TASKTRACK_ENV", "TASKTRACK_LOG_LEVEL", "TASKTRACK_FILE", "TASKTRACK_STRICT",
		"TASKTRACK_STABLE_IDS", "TASKTRACK_COLOR", "TASKTRACK_STORAGE_TYPE", "TASKTRACK_S3_PREFIX",
	)

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "local", env.Env)
	assert.Equal(t, "warn", env.LogLevel)
	assert.Equal(t, "local", env.Type)
	assert.Equal(t, "tasktrack/", env.S3Prefix)
	assert.False(t, env.Strict)
	assert.False(t, env.StableIDs)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKTRACK_FILE", "/tmp/tasks.yaml")
	t.Setenv("TASKTRACK_STRICT", "true")
	t.Setenv("TASKTRACK_STABLE_IDS", "true")
	t.Setenv("TASKTRACK_LOG_LEVEL", "debug")
	t.Setenv("TASKTRACK_STORAGE_TYPE", "s3")
	t.Setenv("TASKTRACK_S3_BUCKET", "tasks")

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tasks.yaml", env.File)
	assert.True(t, env.Strict)
	assert.True(t, env.StableIDs)
	assert.Equal(t, slog.LevelDebug, env.SlogLevel())
	assert.Equal(t, "s3", env.Type)
	assert.Equal(t, "tasks", env.S3Bucket)
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("TASKTRACK_STRICT", "maybe")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestSlogLevelFallback(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, (&BaseEnv{LogLevel: "loud"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (*BaseEnv)(nil).SlogLevel())
	assert.Equal(t, slog.LevelError, (&BaseEnv{LogLevel: "error"}).SlogLevel())
}

func TestTaskFile(t *testing.T) {
	path, err := (&TaskEnv{File: "/data/todo.json"}).TaskFile()
	require.NoError(t, err)
	assert.Equal(t, "/data/todo.json", path)

	home := t.TempDir()
	t.Setenv("HOME", home)
	path, err = (&TaskEnv{}).TaskFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultFileName), path)
}
