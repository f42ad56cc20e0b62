package task

import (
	"fmt"
	"slices"

	"github.com/kazz187/tasktrack/pkg/cerr"
)

// Entry is a task together with its identifier.
type Entry struct {
	ID   int
	Task Task
}

// Store is the ordered identifier to task mapping of one invocation. Entries
// are kept in ascending identifier order. Mutations never modify the receiver;
// they return a new Store.
type Store struct {
	entries []Entry
}

// NewStore assigns identifiers 1..N to tasks in sequence order.
func NewStore(tasks []Task) *Store {
	entries := make([]Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = Entry{ID: i + 1, Task: t}
	}
	return &Store{entries: entries}
}

// NewStableStore builds a store from persisted identifiers. Entries with a
// zero ID receive the next free identifier in sequence order.
func NewStableStore(entries []Entry) (*Store, error) {
	seen := make(map[int]struct{}, len(entries))
	maxID := 0
	for _, e := range entries {
		if e.ID < 0 {
			return nil, fmt.Errorf("invalid task id %d", e.ID)
		}
		if e.ID == 0 {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("duplicate task id %d", e.ID)
		}
		seen[e.ID] = struct{}{}
		maxID = max(maxID, e.ID)
	}

	out := make([]Entry, len(entries))
	for i, e := range entries {
		if e.ID == 0 {
			maxID++
			e.ID = maxID
		}
		out[i] = e
	}
	slices.SortStableFunc(out, func(a, b Entry) int { return a.ID - b.ID })
	return &Store{entries: out}, nil
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the entries in ascending identifier order.
func (s *Store) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Tasks returns the tasks in ascending identifier order.
func (s *Store) Tasks() []Task {
	tasks := make([]Task, len(s.entries))
	for i, e := range s.entries {
		tasks[i] = e.Task
	}
	return tasks
}

func (s *Store) Get(id int) (Task, bool) {
	i, ok := s.index(id)
	if !ok {
		return Task{}, false
	}
	return s.entries[i].Task, true
}

// NextID is the identifier the next added task receives: one past the task
// count, or one past the largest identifier if that is greater.
func (s *Store) NextID() int {
	next := len(s.entries)
	if n := len(s.entries); n > 0 {
		next = max(next, s.entries[n-1].ID)
	}
	return next + 1
}

// Add appends a pending task. Its marker is raised above every existing marker
// so creation order stays total even if the clock reads earlier.
func (s *Store) Add(description string, at Marker) (*Store, Entry) {
	for _, e := range s.entries {
		if e.Task.CreatedAt >= at {
			at = e.Task.CreatedAt + 1
		}
	}
	entry := Entry{ID: s.NextID(), Task: New(description, at)}
	entries := make([]Entry, 0, len(s.entries)+1)
	entries = append(entries, s.entries...)
	entries = append(entries, entry)
	return &Store{entries: entries}, entry
}

// Remove deletes the task with the given identifier. Removing a missing
// identifier returns an equal store and false.
func (s *Store) Remove(id int) (*Store, bool) {
	i, ok := s.index(id)
	if !ok {
		return &Store{entries: slices.Clone(s.entries)}, false
	}
	return &Store{entries: slices.Delete(slices.Clone(s.entries), i, i+1)}, true
}

// Complete marks the task with the given identifier as completed.
func (s *Store) Complete(id int) (*Store, Entry, error) {
	i, ok := s.index(id)
	if !ok {
		return s, Entry{}, cerr.NewError(cerr.NotFound, fmt.Sprintf("task %d not found", id), nil)
	}
	entries := slices.Clone(s.entries)
	entries[i].Task = entries[i].Task.Complete()
	return &Store{entries: entries}, entries[i], nil
}

// Select returns the entries matching filter in ascending identifier order.
func (s *Store) Select(filter Filter) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if filter.Match(e.Task) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store) index(id int) (int, bool) {
	return slices.BinarySearchFunc(s.entries, id, func(e Entry, id int) int { return e.ID - id })
}
