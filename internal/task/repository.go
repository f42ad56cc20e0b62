package task

import "context"

// Repository loads and saves the whole task store.
type Repository interface {
	Load(ctx context.Context) (*Store, error)
	Save(ctx context.Context, s *Store) error
}
