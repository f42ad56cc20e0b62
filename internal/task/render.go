package task

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Renderer prints task listings.
type Renderer struct {
	// Header prints "Task (filter: <name>)" and a rule above the entries.
	Header bool
	Color  bool
}

// Render writes one "<id> - <description> [<glyph>]" line per entry.
func (r Renderer) Render(w io.Writer, entries []Entry, filter Filter) error {
	if r.Header {
		header := fmt.Sprintf("Task (filter: %s)", filter)
		if _, err := fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("─", len(header))); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	done := color.New(color.FgGreen)
	if r.Color {
		done.EnableColor()
	} else {
		done.DisableColor()
	}
	for _, e := range entries {
		glyph := e.Task.Status.Glyph()
		if e.Task.IsCompleted() {
			glyph = done.Sprint(glyph)
		}
		if _, err := fmt.Fprintf(w, "%d - %s [%s]\n", e.ID, e.Task.Description, glyph); err != nil {
			return fmt.Errorf("failed to write task %d: %w", e.ID, err)
		}
	}
	return nil
}
