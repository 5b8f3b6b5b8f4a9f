package future

// Executor is the only collaborator the core consumes for dispatching
// listener callbacks. Execute schedules task; a non-nil return means the
// task was rejected (the systems-language analogue of a
// RejectedExecutionException), not that task itself failed. A panic that
// escapes Execute (as with DirectExecutor running task inline) is recovered
// and logged by the completion driver.
type Executor interface {
	Execute(task func()) error
}

// directExecutor runs every task synchronously, on the calling goroutine.
type directExecutor struct{}

func (directExecutor) Execute(task func()) error {
	task()
	return nil
}

// DirectExecutor returns an Executor that runs tasks inline, on whichever
// goroutine calls Execute. This is frequently the goroutine that drove a
// future to completion, so callbacks registered with it must be cheap and
// must never block — see AddListener's doc comment.
func DirectExecutor() Executor { return directExecutor{} }

// rejectionPropagating wraps an Executor, forwarding rejections into a
// target future's SetFailure instead of swallowing them.
type rejectionPropagating struct {
	exec   Executor
	target *Future
}

// RejectionPropagating wraps exec so that a rejected Execute call completes
// target with a failure carrying the rejection error, instead of silently
// dropping the task.
func RejectionPropagating(exec Executor, target *Future) Executor {
	return rejectionPropagating{exec: exec, target: target}
}

func (r rejectionPropagating) Execute(task func()) error {
	if err := r.exec.Execute(task); err != nil {
		r.target.SetFailure(err)
		return err
	}
	return nil
}
