package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// DefaultFileName is the task file created in the home directory when no path
// is configured.
const DefaultFileName = "todo.json"

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

type TaskEnv struct {
	File      string `envconfig:"FILE"`
	Strict    bool   `envconfig:"STRICT" default:"false"`
	StableIDs bool   `envconfig:"STABLE_IDS" default:"false"`
	Color     bool   `envconfig:"COLOR" default:"false"`
}

type StorageEnv struct {
	Type string `envconfig:"STORAGE_TYPE" default:"local"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"tasktrack/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

type Env struct {
	BaseEnv
	TaskEnv
	StorageEnv
}

const namespace = "TASKTRACK"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// TaskFile returns the configured task file, falling back to DefaultFileName
// in the user's home directory.
func (e *TaskEnv) TaskFile() (string, error) {
	if e != nil && e.File != "" {
		return e.File, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}
