package future

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cancelling a future that is delegating to a target propagates the
// cancellation to that target.
func TestFuture_CancelPropagatesThroughDelegation(t *testing.T) {
	a := New(Hooks{})
	b := New(Hooks{})

	require.True(t, a.SetFuture(b))
	require.True(t, a.Cancel(true))

	assert.True(t, b.IsCancelled(), "cancel must be forwarded to the delegated target")
	assert.True(t, a.WasInterrupted())

	_, err := a.Get(context.Background())
	var cancelErr *CancellationError
	require.ErrorAs(t, err, &cancelErr)
}

func TestFuture_CancelInheritedInterruptBitIsCleared(t *testing.T) {
	a := New(Hooks{})
	b := New(Hooks{})

	require.True(t, a.SetFuture(b))
	require.True(t, b.Cancel(true))

	assert.True(t, a.IsCancelled())
	assert.False(t, a.WasInterrupted(), "an interrupt inherited via delegation must not count as a's own")
	assert.True(t, b.WasInterrupted())
}

func TestFuture_CancelAtMostOnce(t *testing.T) {
	f := New(Hooks{})
	require.True(t, f.SetValue(1))
	assert.False(t, f.Cancel(true), "cancel after a value was set must lose")
	assert.False(t, f.IsCancelled())
}

func TestFuture_CancelRaceAgainstSetValue_ValueWins(t *testing.T) {
	f := New(Hooks{})
	assert.True(t, f.SetValue(5))
	assert.False(t, f.Cancel(false))
	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestFuture_InterruptTaskRunsExactlyOnce(t *testing.T) {
	var calls int
	f := New(Hooks{InterruptTask: func() { calls++ }})
	require.True(t, f.Cancel(true))
	assert.False(t, f.Cancel(true))
	assert.Equal(t, 1, calls)
}

func TestFuture_AfterDoneRunsExactlyOnce(t *testing.T) {
	var calls int
	f := New(Hooks{AfterDone: func() { calls++ }})
	require.True(t, f.SetValue(1))
	assert.Equal(t, 1, calls)
}
