package future

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Delegation cycles are rejected rather than deadlocking or recursing.
func TestFuture_SelfDelegationIsRejected(t *testing.T) {
	a := New(Hooks{})

	ok := a.SetFuture(a)
	assert.False(t, ok)
	assert.False(t, a.IsDone())

	_, err := a.GetTimeout(time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFuture_IndirectDelegationCycleIsRejected(t *testing.T) {
	a := New(Hooks{})
	b := New(Hooks{})

	require.True(t, a.SetFuture(b))
	ok := b.SetFuture(a) // would close the loop a -> b -> a
	assert.False(t, ok)

	_, err := b.GetTimeout(time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
}

// A finite chain of set-future calls resolves every link without
// recursing unboundedly, however deep.
func TestFuture_LongDelegationChainConverges(t *testing.T) {
	const depth = 20000

	chain := make([]*Future, depth)
	var eg errgroup.Group
	for i := range chain {
		i := i
		chain[i] = New(Hooks{})
		if i > 0 {
			eg.Go(func() error {
				chain[i-1].SetFuture(chain[i])
				return nil
			})
		}
	}
	require.NoError(t, eg.Wait())

	require.True(t, chain[depth-1].SetValue("reached the end"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := chain[0].Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reached the end", v)

	for _, f := range chain {
		assert.True(t, f.IsDone())
	}
}

func TestFuture_SetFutureAfterTargetAlreadyTerminal(t *testing.T) {
	target := New(Hooks{})
	require.True(t, target.SetValue("ready"))

	f := New(Hooks{})
	require.True(t, f.SetFuture(target))
	assert.True(t, f.IsDone())

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
}

func TestFuture_SetFutureOnAlreadyCancelledCancelsTarget(t *testing.T) {
	f := New(Hooks{})
	require.True(t, f.Cancel(true))

	target := New(Hooks{})
	ok := f.SetFuture(target)
	assert.False(t, ok)
	assert.True(t, target.IsCancelled())
}
