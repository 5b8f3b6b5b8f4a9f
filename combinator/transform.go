package combinator

import (
	"context"

	future "github.com/joeycumines/go-listenablefuture"
)

// Transform returns a future that resolves to fn(v) once input succeeds
// with v, running fn on exec. A failure or cancellation of input is
// propagated to the result untouched, without ever calling fn. Cancelling
// the result also cancels input (mirroring Guava's
// Futures.transform(..., MoreExecutors.directExecutor())'s cancellation
// propagation) regardless of whether the cancel requested interruption.
func Transform(input *future.Future, fn func(v any) (any, error), exec future.Executor) *future.Future {
	var out *future.Future
	out = future.New(future.Hooks{
		AfterDone: func() {
			if out.IsCancelled() {
				input.Cancel(false)
			}
		},
	})

	input.AddListener(func() {
		v, err := input.Get(context.Background())
		if err != nil {
			propagate(out, nil, err)
			return
		}
		rv, rerr := fn(v)
		if rerr != nil {
			out.SetFailure(rerr)
			return
		}
		out.SetValue(rv)
	}, exec)

	return out
}
