package task

import (
	"fmt"
	"slices"

	"github.com/kazz187/tasktrack/pkg/cerr"
)

// Filter restricts a listing by completion status.
type Filter int

const (
	FilterNone Filter = iota
	FilterPending
	FilterCompleted
)

// FilterNames lists the accepted filter names, default first.
var FilterNames = []string{"none", "pending", "completed"}

func ParseFilter(s string) (Filter, error) {
	switch s {
	case "none", "":
		return FilterNone, nil
	case "pending":
		return FilterPending, nil
	case "completed":
		return FilterCompleted, nil
	default:
		return FilterNone, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("could not parse filter %q", s), nil)
	}
}

func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "none"
	}
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterPending:
		return t.Status == StatusPending
	case FilterCompleted:
		return t.Status == StatusCompleted
	default:
		return true
	}
}

// Order selects how listed entries are sorted.
type Order int

const (
	OrderID Order = iota
	OrderCreated
)

var OrderNames = []string{"id", "created"}

func ParseOrder(s string) (Order, error) {
	switch s {
	case "id", "":
		return OrderID, nil
	case "created":
		return OrderCreated, nil
	default:
		return OrderID, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("could not parse order %q", s), nil)
	}
}

func (o Order) String() string {
	if o == OrderCreated {
		return "created"
	}
	return "id"
}

// Sort returns entries sorted by o. Ties on the creation marker keep
// identifier order.
func (o Order) Sort(entries []Entry) []Entry {
	out := slices.Clone(entries)
	switch o {
	case OrderCreated:
		slices.SortStableFunc(out, func(a, b Entry) int { return a.Task.Compare(b.Task) })
	default:
		slices.SortStableFunc(out, func(a, b Entry) int { return a.ID - b.ID })
	}
	return out
}
