package clog

import (
	"context"
	"maps"
	"sync"
)

const (
	ErrorAttributeKey = "error"
	StackAttributeKey = "stack"
)

// attributeBag holds the attributes of one command run. It is shared by every
// context derived from the one returned by ContextWithSlog.
type attributeBag struct {
	mu    sync.RWMutex
	attrs map[string]any
}

type bagKey struct{}

func ContextWithSlog(ctx context.Context) context.Context {
	return context.WithValue(ctx, bagKey{}, &attributeBag{attrs: make(map[string]any)})
}

func bagFrom(ctx context.Context) *attributeBag {
	b, _ := ctx.Value(bagKey{}).(*attributeBag)
	return b
}

func AddAttribute(ctx context.Context, key string, value any) {
	AddAttributes(ctx, map[string]any{key: value})
}

// AddAttributes merges attributes into the bag. Nested maps are merged key by
// key instead of being replaced.
func AddAttributes(ctx context.Context, attributes map[string]any) {
	b := bagFrom(ctx)
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	mergeMaps(b.attrs, attributes)
}

// GetAttribute returns the attribute stored under key, or the zero value of T
// when it is missing or of another type.
func GetAttribute[T any](ctx context.Context, key string) T {
	var zero T
	b := bagFrom(ctx)
	if b == nil {
		return zero
	}
	b.mu.RLock()
	v, ok := b.attrs[key].(T)
	b.mu.RUnlock()
	if !ok {
		return zero
	}
	return v
}

func GetAttributes(ctx context.Context) map[string]any {
	b := bagFrom(ctx)
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.attrs)
}

func AddError(ctx context.Context, err error) {
	AddAttribute(ctx, ErrorAttributeKey, err)
}

func GetError(ctx context.Context) error {
	return GetAttribute[error](ctx, ErrorAttributeKey)
}

func AddStack(ctx context.Context, stack string) {
	AddAttribute(ctx, StackAttributeKey, stack)
}

func GetStack(ctx context.Context) string {
	return GetAttribute[string](ctx, StackAttributeKey)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		vMap, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if dstMap, ok := dst[k].(map[string]any); ok {
			mergeMaps(dstMap, vMap)
			continue
		}
		dst[k] = vMap
	}
}
