package combinator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	future "github.com/joeycumines/go-listenablefuture"
	"github.com/joeycumines/go-listenablefuture/combinator"
)

func TestCombinedCallable_SumsOnceAllSucceed(t *testing.T) {
	a := future.New(future.Hooks{})
	b := future.New(future.Hooks{})

	out := combinator.CombinedCallable([]*future.Future{a, b}, func(values []any) (any, error) {
		sum := 0
		for _, v := range values {
			sum += v.(int)
		}
		return sum, nil
	}, future.DirectExecutor())

	require.True(t, a.SetValue(2))
	require.True(t, b.SetValue(3))

	v, err := out.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCombinedCallable_PropagatesFailure(t *testing.T) {
	a := future.New(future.Hooks{})
	b := future.New(future.Hooks{})

	called := false
	out := combinator.CombinedCallable([]*future.Future{a, b}, func(values []any) (any, error) {
		called = true
		return nil, nil
	}, future.DirectExecutor())

	require.True(t, a.SetFailure(assertErr("a failed")))

	_, err := out.Get(context.Background())
	require.Error(t, err)
	assert.False(t, called)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
