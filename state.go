package future

// kind discriminates the tagged union stored behind Future.state. Using an
// explicit discriminator, rather than sentinel object identity, means a
// successful nil value is simply kindValue with value == nil — there is no
// need for a separate "Null" sentinel to disambiguate it from kindPending.
type kind uint8

const (
	kindPending kind = iota
	kindValue
	kindFailure
	kindCancelled
	kindDelegating
)

func (k kind) terminal() bool {
	return k == kindValue || k == kindFailure || k == kindCancelled
}

// state is the single tagged-union payload installed atomically into
// Future.state. Exactly one of value/err/target is meaningful, selected by
// kind. Instances are immutable once published; a transition always
// allocates a fresh *state and CASes it in, never mutates one in place.
type state struct {
	kind kind

	// kindValue
	value any

	// kindFailure: err is the producer's reported error.
	// kindCancelled: err is the optional cancellation cause.
	err error

	// kindCancelled only.
	interrupt bool

	// kindDelegating only.
	target *Future
}

// pendingState is the shared initial value of every Future; it carries no
// payload, so a single instance may be reused by every future.
var pendingState = &state{kind: kindPending}

// fallbackFailureErr is installed via kindFailure on the dependent future
// whenever resolving a delegation listener panics — a last-resort terminal
// state so the dependent future never hangs pending forever because of it.
var fallbackFailureErr = errRejectedExecution("future: fallback failure — delegation listener registration failed")

type errRejectedExecution string

func (e errRejectedExecution) Error() string { return string(e) }
