package async

import (
	"errors"
	"fmt"
)

var (
	ErrTimeout   = errors.New("async: operation timed out waiting for future completion")
	ErrNoFutures = errors.New("async: WaitAny called with empty futures slice")
	ErrRejected  = errors.New("async: future rejected without an error")
	ErrPanic     = errors.New("async: panic during invocation")
	ErrSubmit    = errors.New("async: executor rejected task")
)

// PanicError carries a value recovered from a panic inside a future's executor.
// It matches ErrPanic with errors.Is and unwraps to the panic value when that
// value is itself an error.
type PanicError struct {
	Value any
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPanic.Error(), e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrPanic
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
