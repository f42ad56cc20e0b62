package panicerr

import (
	"context"

	"github.com/sourcegraph/conc/panics"

	"github.com/kazz187/tasktrack/pkg/cerr"
)

// SafeContext wraps fn so that a panic inside it is returned as an Internal
// error carrying the panic value and stack instead of crashing the process.
func SafeContext(fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		var (
			catcher panics.Catcher
			err     error
		)
		catcher.Try(func() {
			err = fn(ctx)
		})
		if err != nil {
			return err
		}
		r := catcher.Recovered()
		if r == nil {
			return nil
		}
		e := cerr.NewError(cerr.Internal, "unexpected panic", r.AsError())
		e.Stack = string(r.Stack)
		return e
	}
}
