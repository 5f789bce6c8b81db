package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a recovered panic carried as an error, with the stack
// captured at recovery time.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return fmt.Sprintf("panic: %v", err)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// RecoverPanic converts a recover() result into an error.
// Returns nil when r is nil so it can be called unconditionally.
func RecoverPanic(r interface{}) error {
	if r == nil {
		return nil
	}

	return &PanicError{
		Value: r,
		Stack: debug.Stack(),
	}
}
