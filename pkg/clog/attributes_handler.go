package clog

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// AttributesHandler copies the attributes collected in the context onto every
// record before passing it to the wrapped handler. The stack attribute is only
// attached to records at error level or above.
type AttributesHandler struct {
	handler slog.Handler
}

func NewAttributesHandler(handler slog.Handler) *AttributesHandler {
	return &AttributesHandler{handler: handler}
}

func (h *AttributesHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *AttributesHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := GetAttributes(ctx)
	if record.Level < slog.LevelError {
		delete(attrs, StackAttributeKey)
	}
	if len(attrs) > 0 {
		record.AddAttrs(contextAttrs(attrs)...)
	}
	return h.handler.Handle(ctx, record)
}

func (h *AttributesHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AttributesHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *AttributesHandler) WithGroup(name string) slog.Handler {
	return &AttributesHandler{handler: h.handler.WithGroup(name)}
}

// contextAttrs returns the attributes sorted by key so that the JSON handler
// output is stable between runs.
func contextAttrs(m map[string]any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		attrs = append(attrs, slog.Any(k, m[k]))
	}
	return attrs
}
