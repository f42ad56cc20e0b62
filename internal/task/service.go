package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kazz187/tasktrack/pkg/cerr"
)

// Service runs one load, mutate, save cycle per call.
type Service struct {
	repository Repository
	strict     bool
	now        func() time.Time
}

type ServiceOption func(*Service)

// WithStrict makes Remove fail with NotFound on a missing identifier, like
// Complete does.
func WithStrict(strict bool) ServiceOption {
	return func(s *Service) {
		s.strict = strict
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new task service
func NewService(repository Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repository: repository,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a pending task with the next identifier and saves the store.
func (s *Service) Add(ctx context.Context, description string) (Entry, error) {
	store, err := s.repository.Load(ctx)
	if err != nil {
		return Entry{}, err
	}

	store, entry := store.Add(description, NewMarker(s.now()))
	if err := s.repository.Save(ctx, store); err != nil {
		return Entry{}, err
	}

	slog.DebugContext(ctx, "task added", "id", entry.ID, "count", store.Len())
	return entry, nil
}

// Remove deletes the task with id and saves the remaining tasks. A missing id
// is not an error unless the service is strict.
func (s *Service) Remove(ctx context.Context, id int) (bool, error) {
	store, err := s.repository.Load(ctx)
	if err != nil {
		return false, err
	}

	store, removed := store.Remove(id)
	if !removed && s.strict {
		return false, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %d not found", id), nil)
	}
	if err := s.repository.Save(ctx, store); err != nil {
		return false, err
	}

	slog.DebugContext(ctx, "task removed", "id", id, "removed", removed, "count", store.Len())
	return removed, nil
}

// Complete marks the task with id as completed and saves the store. A missing
// id is a NotFound error and nothing is written.
func (s *Service) Complete(ctx context.Context, id int) (Entry, error) {
	store, err := s.repository.Load(ctx)
	if err != nil {
		return Entry{}, err
	}

	store, entry, err := store.Complete(id)
	if err != nil {
		return Entry{}, err
	}
	if err := s.repository.Save(ctx, store); err != nil {
		return Entry{}, err
	}

	slog.DebugContext(ctx, "task completed", "id", id)
	return entry, nil
}

// List returns the tasks matching filter in the given order. It never writes.
func (s *Service) List(ctx context.Context, filter Filter, order Order) ([]Entry, error) {
	store, err := s.repository.Load(ctx)
	if err != nil {
		return nil, err
	}
	return order.Sort(store.Select(filter)), nil
}
