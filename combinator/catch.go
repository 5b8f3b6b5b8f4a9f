package combinator

import (
	"context"

	future "github.com/joeycumines/go-listenablefuture"
)

// Catch returns a future that resolves the same way input does when input
// succeeds or is cancelled, but substitutes fn(cause) when input fails.
// Like Transform, Catch never passes input's cancellation to fn — a cancelled
// input cancels the result directly, matching Guava's
// Futures.catching(..., Throwable.class, ...) not recovering cancellation.
func Catch(input *future.Future, fn func(cause error) (any, error), exec future.Executor) *future.Future {
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
		if err == nil {
			out.SetValue(v)
			return
		}
		cause, cancelled := unwrap(err)
		if cancelled {
			out.Cancel(false)
			return
		}
		rv, rerr := fn(cause)
		if rerr != nil {
			out.SetFailure(rerr)
			return
		}
		out.SetValue(rv)
	}, exec)

	return out
}
