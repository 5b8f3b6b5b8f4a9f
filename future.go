package future

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

// Hooks is the capability record a producer supplies to New. It stands in
// for the subclass override points of Guava's AbstractFuture — interrupt
// task, after-done, and an optional pending description — as plain
// function fields, without giving consumers of *Future any way to invoke
// them directly.
type Hooks struct {
	// InterruptTask is invoked at most once, on the goroutine that wins
	// Cancel(true), before the completion driver runs. Default: no-op.
	InterruptTask func()

	// AfterDone is invoked exactly once, after listener dispatch, on the
	// goroutine that drove completion (or the goroutine that resolved the
	// terminal link of a delegation chain). Default: no-op.
	AfterDone func()

	// PendingDesc optionally describes what this future is waiting on, for
	// DebugString. Default: none.
	PendingDesc func() string
}

// Future is a single-assignment, thread-safe result cell. The zero value is
// not usable; construct one with New.
type Future struct {
	state     atomic.Pointer[state]
	waiters   atomic.Pointer[waiterNode]
	listeners atomic.Pointer[listenerNode]

	hooks Hooks

	// creationStack is populated only when debugMode is enabled.
	creationStack []uintptr
}

// debugMode gates creation-stack capture for DebugString. It is a package
// variable, not a per-future option, because stack capture is a global
// diagnostic toggle, and capturing it per-call would defeat its purpose of
// being cheap to leave off in production.
var debugMode atomic.Bool

// SetDebugMode toggles creation-stack capture for futures constructed after
// the call. It is safe for concurrent use but is intended to be set once,
// early in a program's life (e.g. from a build tag or flag), not flipped
// per request.
func SetDebugMode(enabled bool) { debugMode.Store(enabled) }

// New constructs a Pending Future. hooks may be the zero value, in which
// case InterruptTask and AfterDone are no-ops and DebugString carries no
// pending description.
func New(hooks Hooks) *Future {
	f := &Future{hooks: hooks}
	f.state.Store(pendingState)
	if debugMode.Load() {
		pcs := make([]uintptr, 32)
		n := runtime.Callers(2, pcs)
		f.creationStack = pcs[:n]
	}
	return f
}

// IsDone reports whether the future has reached a terminal state, following
// any delegation chain transitively.
func (f *Future) IsDone() bool {
	s := f.state.Load()
	for s.kind == kindDelegating {
		s = s.target.state.Load()
	}
	return s.kind.terminal()
}

// IsCancelled reports whether the future's resolved terminal state (its own,
// or that of whatever it is/was delegating to) is Cancelled.
func (f *Future) IsCancelled() bool {
	s := f.state.Load()
	for s.kind == kindDelegating {
		s = s.target.state.Load()
	}
	return s.kind == kindCancelled
}

// WasInterrupted reports true only if this future's own Cancelled state (not
// one inherited transitively from a delegated target) carries the interrupt
// bit. An interrupt bit inherited from a target's cancellation is never
// surfaced here; only a direct Cancel(true) on this future counts.
func (f *Future) WasInterrupted() bool {
	s := f.state.Load()
	return s.kind == kindCancelled && s.interrupt
}

// DebugString returns a short, human-oriented description of the future's
// current state, including a creation stack trace if SetDebugMode(true) was
// in effect when this future was constructed, and the result of
// Hooks.PendingDesc while the future remains pending.
func (f *Future) DebugString() string {
	s := f.state.Load()
	desc := stateDescription(s)
	if s.kind == kindPending && f.hooks.PendingDesc != nil {
		if d := f.hooks.PendingDesc(); d != "" {
			desc += ": " + d
		}
	}
	if len(f.creationStack) == 0 {
		return desc
	}
	frames := runtime.CallersFrames(f.creationStack)
	out := desc + "\ncreated at:"
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			out += "\n\t" + frame.Function + " (" + frame.File + ")"
		}
		if !more {
			break
		}
	}
	return out
}

func stateDescription(s *state) string {
	switch s.kind {
	case kindPending:
		return "pending"
	case kindValue:
		return "done (value)"
	case kindFailure:
		return "done (failure: " + s.err.Error() + ")"
	case kindCancelled:
		return "cancelled"
	case kindDelegating:
		return "delegating"
	default:
		return "unknown"
	}
}

// spinThreshold is the remaining-budget cutoff below which a timed wait
// switches from parking to a busy loop re-reading state, to avoid paying
// channel park/unpark latency for a deadline that is about to fire anyway.
const spinThreshold = time.Microsecond

// Get blocks until the future is terminal (following delegation), or until
// ctx is done, whichever comes first. A cancelled ctx surfaces as ctx.Err()
// (the idiomatic Go analogue of Java's InterruptedException), unwrapped so
// callers can use errors.Is(err, context.Canceled) / errors.Is(err,
// context.DeadlineExceeded) directly.
func (f *Future) Get(ctx context.Context) (any, error) {
	s := f.state.Load()
	if s.kind.terminal() {
		return unbox(s)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if dl, ok := ctx.Deadline(); ok {
		if time.Until(dl) <= spinThreshold {
			return f.spinWait(ctx)
		}
	}

	n := newWaiterNode()
	if !f.pushWaiter(n) {
		// Lost the race: completion happened between the load above and
		// the push. Re-read; it must now be terminal.
		return unbox(f.state.Load())
	}

	// Once the remaining budget drops to spinThreshold, stop parking and
	// finish the wait in spinWait.
	var spinAt <-chan time.Time
	if dl, ok := ctx.Deadline(); ok {
		timer := time.NewTimer(time.Until(dl) - spinThreshold)
		defer timer.Stop()
		spinAt = timer.C
	}

	select {
	case <-n.ch:
		return unbox(f.state.Load())
	case <-spinAt:
		f.removeWaiter(n)
		return f.spinWait(ctx)
	case <-ctx.Done():
		f.removeWaiter(n)
		// Prefer completion over the interrupt/timeout signal on a close
		// race: if both n.ch and ctx.Done() are ready, report the result.
		select {
		case <-n.ch:
			return unbox(f.state.Load())
		default:
		}
		return nil, ctx.Err()
	}
}

// spinWait busy-loops re-reading state instead of parking, for the tail of
// a timed wait whose remaining budget has dropped below spinThreshold.
func (f *Future) spinWait(ctx context.Context) (any, error) {
	for {
		if s := f.state.Load(); s.kind.terminal() {
			return unbox(s)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		runtime.Gosched()
	}
}

// GetTimeout is Get bounded by d. A non-positive d performs exactly one
// non-blocking observation of the current state rather than blocking at
// all. A d that elapses before completion returns ErrTimeout.
func (f *Future) GetTimeout(d time.Duration) (any, error) {
	if d <= 0 {
		s := f.state.Load()
		if s.kind.terminal() {
			return unbox(s)
		}
		return nil, ErrTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	v, err := f.Get(ctx)
	if err == context.DeadlineExceeded {
		return nil, ErrTimeout
	}
	return v, err
}

// unbox converts a terminal state into the user-visible (value, error) pair.
func unbox(s *state) (any, error) {
	switch s.kind {
	case kindValue:
		return s.value, nil
	case kindFailure:
		return nil, &ExecutionError{Cause: s.err}
	case kindCancelled:
		return nil, &CancellationError{Cause: s.err}
	default:
		// Only reachable if called on a non-terminal state, which callers
		// here never do.
		panic("future: unbox called on non-terminal state")
	}
}
