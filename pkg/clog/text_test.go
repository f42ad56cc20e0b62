package clog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandlerWritesColumnsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTextHandler(&buf, WithColor(false), WithLevel(slog.LevelDebug)))

	logger.Info("saved tasks", "operation", "add", "run_id", "01J", "count", 2)

	out := buf.String()
	assert.Contains(t, out, "INFO 01J add \"saved tasks\"\n")
	assert.Contains(t, out, "    count=2\n")
	assert.NotContains(t, out, "\033[")
}

func TestTextHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTextHandler(&buf, WithColor(false), WithLevel(slog.LevelWarn)))

	logger.Debug("hidden")
	logger.Info("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "\"shown\"")
}

func TestTextHandlerPrintsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTextHandler(&buf, WithColor(false)))

	logger.Error("failed to save", ErrorAttributeKey, errors.New("disk full"))

	assert.Contains(t, buf.String(), "\"failed to save\" \"disk full\"\n")
}

func TestTextHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTextHandler(&buf, WithColor(false))).WithGroup("store")

	logger.Info("loaded", "count", 3)

	assert.Contains(t, buf.String(), "    store.count=3\n")
}

func TestAttributesHandlerAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewAttributesHandler(NewTextHandler(&buf, WithColor(false))))

	ctx := ContextWithSlog(context.Background())
	AddAttributes(ctx, map[string]any{"run_id": "01J", "operation": "list"})
	logger.InfoContext(ctx, "listed")

	assert.Contains(t, buf.String(), "INFO 01J list \"listed\"\n")
}

func TestContextAttributes(t *testing.T) {
	ctx := ContextWithSlog(context.Background())
	AddAttribute(ctx, "count", 3)
	AddError(ctx, errors.New("boom"))
	AddStack(ctx, "goroutine 1")

	assert.Equal(t, 3, GetAttribute[int](ctx, "count"))
	assert.Equal(t, "", GetAttribute[string](ctx, "count"))
	require.Error(t, GetError(ctx))
	assert.Equal(t, "boom", GetError(ctx).Error())
	assert.Equal(t, "goroutine 1", GetStack(ctx))

	assert.Nil(t, GetAttributes(context.Background()))
	AddAttribute(context.Background(), "ignored", true)
}

func TestAddAttributesMergesNestedMaps(t *testing.T) {
	ctx := ContextWithSlog(context.Background())
	AddAttributes(ctx, map[string]any{"store": map[string]any{"path": "todo.json"}})
	AddAttributes(ctx, map[string]any{"store": map[string]any{"count": 2}})

	store := GetAttribute[map[string]any](ctx, "store")
	assert.Equal(t, map[string]any{"path": "todo.json", "count": 2}, store)
}
