package task

import (
	"cmp"
	"fmt"
	"time"
)

// Status represents task status
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Status glyphs as they appear in the task file and in listings.
const (
	GlyphPending   = " "
	GlyphCompleted = "✓"
)

func (s Status) Glyph() string {
	if s == StatusCompleted {
		return GlyphCompleted
	}
	return GlyphPending
}

// ParseGlyph maps a stored status glyph back to its Status.
func ParseGlyph(glyph string) (Status, error) {
	switch glyph {
	case GlyphPending:
		return StatusPending, nil
	case GlyphCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown status %q", glyph)
	}
}

// Marker is an opaque creation marker in milliseconds since the Unix epoch.
// It only orders tasks and carries no calendar meaning.
type Marker int64

func NewMarker(t time.Time) Marker {
	return Marker(t.UnixMilli())
}

// Task represents a single tracked to-do item
type Task struct {
	Description string
	Status      Status
	CreatedAt   Marker
}

// New creates a pending task. The description is not validated.
func New(description string, at Marker) Task {
	return Task{
		Description: description,
		Status:      StatusPending,
		CreatedAt:   at,
	}
}

// Complete returns the task marked as completed. Completing a completed task
// returns it unchanged.
func (t Task) Complete() Task {
	t.Status = StatusCompleted
	return t
}

func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Compare orders tasks by creation marker only.
func (t Task) Compare(other Task) int {
	return cmp.Compare(t.CreatedAt, other.CreatedAt)
}

func (t Task) Less(other Task) bool {
	return t.Compare(other) < 0
}

// Equal reports whether both tasks share a creation marker. It is an ordering
// equality, not a content comparison.
func (t Task) Equal(other Task) bool {
	return t.Compare(other) == 0
}
