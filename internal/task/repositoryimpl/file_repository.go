package repositoryimpl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kazz187/tasktrack/internal/task"
	"github.com/kazz187/tasktrack/pkg/cerr"
	"github.com/kazz187/tasktrack/pkg/storage"
)

const target = "task file"

// FileRepository keeps the whole task list in a single storage object.
type FileRepository struct {
	storage   storage.Storage
	path      string
	codec     codec
	stableIDs bool
}

type Option func(*FileRepository)

// WithStableIDs persists identifiers instead of deriving them from position.
func WithStableIDs(stable bool) Option {
	return func(r *FileRepository) {
		r.stableIDs = stable
	}
}

func NewFileRepository(s storage.Storage, path string, opts ...Option) *FileRepository {
	r := &FileRepository{
		storage: s,
		path:    path,
		codec:   codecFor(path),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *FileRepository) Load(ctx context.Context) (*task.Store, error) {
	data, err := r.storage.Read(ctx, r.path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.DebugContext(ctx, "task file does not exist yet", "path", r.path)
			return task.NewStore(nil), nil
		}
		return nil, cerr.WrapStorageReadError(target, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return task.NewStore(nil), nil
	}

	records, err := r.codec.decode(data)
	if err != nil {
		return nil, cerr.WrapDecodeError(target, err)
	}
	store, err := r.toStore(records)
	if err != nil {
		return nil, cerr.WrapDecodeError(target, err)
	}

	slog.DebugContext(ctx, "loaded tasks", "path", r.path, "count", store.Len())
	return store, nil
}

func (r *FileRepository) toStore(records []record) (*task.Store, error) {
	entries := make([]task.Entry, len(records))
	for i, rec := range records {
		status, err := task.ParseGlyph(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("task at position %d: %w", i+1, err)
		}
		entries[i] = task.Entry{
			ID: rec.ID,
			Task: task.Task{
				Description: rec.Description,
				Status:      status,
				CreatedAt:   task.Marker(rec.Time),
			},
		}
	}

	if r.stableIDs {
		return task.NewStableStore(entries)
	}
	tasks := make([]task.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.Task
	}
	return task.NewStore(tasks), nil
}

func (r *FileRepository) Save(ctx context.Context, s *task.Store) error {
	entries := s.Entries()
	records := make([]record, len(entries))
	for i, e := range entries {
		records[i] = record{
			Time:        int64(e.Task.CreatedAt),
			Description: e.Task.Description,
			Status:      e.Task.Status.Glyph(),
		}
		if r.stableIDs {
			records[i].ID = e.ID
		}
	}

	data, err := r.codec.encode(records)
	if err != nil {
		return cerr.NewError(cerr.Internal, "failed to encode tasks", err)
	}
	if err := r.storage.Write(ctx, r.path, data); err != nil {
		return cerr.WrapStorageWriteError(target, err)
	}

	slog.DebugContext(ctx, "saved tasks", "path", r.path, "count", len(records))
	return nil
}
