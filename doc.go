// Package future implements a single-assignment, thread-safe result cell —
// a "listenable future" in the style of Guava's AbstractFuture. It supports
// blocking waits (Get, GetTimeout), asynchronous listener callbacks
// (AddListener), cancellation with propagation (Cancel), and transparent
// delegation to another future (SetFuture).
//
// The state machine is lock-free: completion, waiter registration, and
// listener registration are all driven by compare-and-swap loops over a
// small tagged union (state) and two Treiber stacks (waiters, listeners).
// Combinators (Transform, Catch, AggregateAll, CombinedCallable) are
// deliberately not part of this package; they live in the sibling
// combinator package and consume only the public API below.
package future
