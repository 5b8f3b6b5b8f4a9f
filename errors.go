package future

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced through Get/GetTimeout. Interruption is reported
// as the caller's own context.Canceled, not one of these, since this
// package has no thread to interrupt — only a context to observe.
var (
	// ErrCancelled is wrapped by CancellationError and returned by
	// errors.Is checks against a cancelled future's terminal error.
	ErrCancelled = errors.New("future: cancelled")

	// ErrTimeout is returned by GetTimeout when the wait budget elapses
	// before the future completes. Get with a context deadline reports the
	// context's own context.DeadlineExceeded instead.
	ErrTimeout = errors.New("future: timeout")

	errInvalidArgument = errors.New("future: invalid argument")
)

// ExecutionError wraps the error a producer reported via SetFailure. It is
// returned by Get/GetTimeout for a future in the Failure state.
type ExecutionError struct {
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("future: execution failed: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// CancellationError is returned by Get/GetTimeout for a future in the
// Cancelled state. Cause is the cause recorded in that Cancelled state, if
// any; Cancel records none, so Cause is nil for a future cancelled through
// Cancel, directly or via a delegated target's cancellation.
type CancellationError struct {
	Cause error
}

func (e *CancellationError) Error() string {
	if e.Cause == nil {
		return "future: cancelled"
	}
	return fmt.Sprintf("future: cancelled: %v", e.Cause)
}

func (e *CancellationError) Unwrap() error {
	if e.Cause == nil {
		return ErrCancelled
	}
	return e.Cause
}

func (e *CancellationError) Is(target error) bool {
	return target == ErrCancelled
}
