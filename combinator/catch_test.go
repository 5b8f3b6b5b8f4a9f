package combinator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	future "github.com/joeycumines/go-listenablefuture"
	"github.com/joeycumines/go-listenablefuture/combinator"
)

func TestCatch_RecoversFailure(t *testing.T) {
	input := future.New(future.Hooks{})
	out := combinator.Catch(input, func(cause error) (any, error) {
		return "recovered: " + cause.Error(), nil
	}, future.DirectExecutor())

	require.True(t, input.SetFailure(fmt.Errorf("boom")))

	v, err := out.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "recovered: boom", v)
}

func TestCatch_PassesThroughSuccess(t *testing.T) {
	input := future.New(future.Hooks{})
	called := false
	out := combinator.Catch(input, func(cause error) (any, error) {
		called = true
		return nil, nil
	}, future.DirectExecutor())

	require.True(t, input.SetValue(42))

	v, err := out.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.False(t, called)
}

func TestCatch_DoesNotRecoverCancellation(t *testing.T) {
	input := future.New(future.Hooks{})
	called := false
	out := combinator.Catch(input, func(cause error) (any, error) {
		called = true
		return nil, nil
	}, future.DirectExecutor())

	require.True(t, input.Cancel(false))

	assert.True(t, out.IsCancelled())
	assert.False(t, called)
}

func TestCatch_FnFailureFailsResult(t *testing.T) {
	input := future.New(future.Hooks{})
	replacement := fmt.Errorf("still broken")
	out := combinator.Catch(input, func(cause error) (any, error) {
		return nil, replacement
	}, future.DirectExecutor())

	require.True(t, input.SetFailure(fmt.Errorf("original")))

	_, err := out.Get(context.Background())
	var execErr *future.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, replacement, execErr.Cause)
}
