package combinator

import future "github.com/joeycumines/go-listenablefuture"

// CombinedCallable returns a future that resolves to combine(values), where
// values holds every input's result in input order, once all inputs have
// succeeded — the same "wait for all, then call a function over the
// results" shape as Guava's whenAllSucceed(...).call(combinedCallable,
// executor), built here directly on top of AggregateAll and Transform.
func CombinedCallable(inputs []*future.Future, combine func(values []any) (any, error), exec future.Executor) *future.Future {
	return Transform(AggregateAll(inputs, exec), func(v any) (any, error) {
		return combine(v.([]any))
	}, exec)
}
