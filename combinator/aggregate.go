package combinator

import (
	"context"
	"sync/atomic"

	future "github.com/joeycumines/go-listenablefuture"
)

// AggregateAll returns a future that resolves to a []any holding every
// input's value, in input order, once all inputs have succeeded. If any
// input fails, the result fails with that cause as soon as it is observed
// (fail-fast — it does not wait for the remaining inputs). If any input is
// cancelled, the result is cancelled. Cancelling the result cancels every
// input, best-effort.
func AggregateAll(inputs []*future.Future, exec future.Executor) *future.Future {
	var out *future.Future
	out = future.New(future.Hooks{
		AfterDone: func() {
			if out.IsCancelled() {
				for _, in := range inputs {
					in.Cancel(false)
				}
			}
		},
	})

	if len(inputs) == 0 {
		out.SetValue([]any{})
		return out
	}

	values := make([]any, len(inputs))
	var remaining atomic.Int64
	remaining.Store(int64(len(inputs)))

	for i, in := range inputs {
		i, in := i, in
		in.AddListener(func() {
			v, err := in.Get(context.Background())
			if err != nil {
				cause, cancelled := unwrap(err)
				if cancelled {
					out.Cancel(false)
				} else {
					out.SetFailure(cause)
				}
				return
			}
			values[i] = v
			if remaining.Add(-1) == 0 {
				out.SetValue(append([]any(nil), values...))
			}
		}, exec)
	}

	return out
}
