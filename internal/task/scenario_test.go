package task_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/tasktrack/internal/task"
	"github.com/kazz187/tasktrack/internal/task/repositoryimpl"
	"github.com/kazz187/tasktrack/pkg/storage"
)

// newService builds a service the way the CLI does: one fresh repository per
// invocation over the same file.
func newService(t *testing.T, dir string) *task.Service {
	t.Helper()
	s, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return task.NewService(repositoryimpl.NewFileRepository(s, "todo.json"))
}

func TestScenarioAddCompleteRemoveList(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := newService(t, dir).Add(ctx, "buy milk")
	require.NoError(t, err)

	entries, err := newService(t, dir).List(ctx, task.FilterNone, task.OrderID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "buy milk", entries[0].Task.Description)
	assert.Equal(t, task.StatusPending, entries[0].Task.Status)

	e, err := newService(t, dir).Add(ctx, "write docs")
	require.NoError(t, err)
	assert.Equal(t, 2, e.ID)

	e, err = newService(t, dir).Complete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, e.Task.Status)

	removed, err := newService(t, dir).Remove(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	entries, err = newService(t, dir).List(ctx, task.FilterPending, task.OrderID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, task.Renderer{}.Render(&buf, entries, task.FilterPending))
	assert.Equal(t, "1 - write docs [ ]\n", buf.String())
}

func TestScenarioRemoveRenumbersOnNextLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, d := range []string{"a", "b", "c"} {
		_, err := newService(t, dir).Add(ctx, d)
		require.NoError(t, err)
	}
	_, err := newService(t, dir).Remove(ctx, 2)
	require.NoError(t, err)

	entries, err := newService(t, dir).List(ctx, task.FilterNone, task.OrderID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "c", entries[1].Task.Description)
}

func TestScenarioCompleteMissingLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, err := newService(t, dir).Add(ctx, "a")
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(dir, "todo.json"))
	require.NoError(t, err)

	_, err = newService(t, dir).Complete(ctx, 3)
	require.Error(t, err)

	after, err := os.ReadFile(filepath.Join(dir, "todo.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScenarioCompleteOnMissingFileDoesNotCreateIt(t *testing.T) {
	dir := t.TempDir()

	_, err := newService(t, dir).Complete(context.Background(), 1)
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "todo.json"))
	assert.True(t, os.IsNotExist(err))
}
