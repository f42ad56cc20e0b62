package cerr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

type Error struct {
	Code  Code
	Msg   string // message shown to the user together with Code
	Err   error  // underlying cause, logged but not shown
	Stack string
}

func NewError(code Code, msg string, underlying error) *Error {
	err := &Error{
		Code: code,
		Msg:  msg,
		Err:  underlying,
	}
	if code.Level() >= slog.LevelError {
		stackTrace := make([]byte, 2048)
		n := runtime.Stack(stackTrace, false)
		err.Stack = string(stackTrace[0:n])
	}
	return err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code.String(), e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code.String(), e.Msg, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Normalize turns any error into an *Error, mapping context cancellation to
// Canceled and untagged errors to Unknown.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	if errors.Is(err, context.Canceled) {
		return NewError(Canceled, "canceled", err)
	}
	return NewError(Unknown, "unknown error", err)
}

func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	return Normalize(err).Code
}

func IsCode(err error, code Code) bool {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}
