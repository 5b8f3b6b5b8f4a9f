// Package combinator provides Transform, Catch, AggregateAll, and
// CombinedCallable: small external collaborators built entirely on top of
// the public contract of package future. None of these types are known to
// package future; each owns one inner *future.Future and drives it purely
// via AddListener, SetValue, SetFailure, and Cancel.
package combinator

import (
	"errors"

	future "github.com/joeycumines/go-listenablefuture"
)

// unwrap converts an error returned by (*future.Future).Get/GetTimeout back
// into either a cancellation signal (cancelled==true), a plain
// failure cause, or passes through anything unrecognised untouched.
func unwrap(err error) (cause error, cancelled bool) {
	var ce *future.CancellationError
	if errors.As(err, &ce) {
		return ce.Unwrap(), true
	}
	var ee *future.ExecutionError
	if errors.As(err, &ee) {
		return ee.Cause, false
	}
	return err, false
}

// propagate resolves out the same way src's terminal result (v, err)
// resolved: a value, a failure, or a cancellation — without ever treating a
// cancellation as a plain failure.
func propagate(out *future.Future, v any, err error) {
	if err == nil {
		out.SetValue(v)
		return
	}
	cause, cancelled := unwrap(err)
	if cancelled {
		out.Cancel(false)
		return
	}
	out.SetFailure(cause)
}
