package future

import "fmt"

// delegateLink is the internal listener payload registered on target when
// this future set-futures it. It is never exposed outside this package; it
// is what distinguishes an internal "complete dependent when I resolve"
// marker from an ordinary user listener in the drain loop.
type delegateLink struct {
	target    *Future
	dependent *Future
}

// SetValue completes the future with v, provided it is still Pending.
// Returns false (discarding v) if some other producer call already won, or
// if the future is Delegating: only Cancel may pre-empt a delegation.
func (f *Future) SetValue(v any) bool {
	ns := &state{kind: kindValue, value: v}
	for {
		old := f.state.Load()
		if old.kind != kindPending {
			return false
		}
		if f.state.CompareAndSwap(old, ns) {
			f.drive()
			return true
		}
	}
}

// SetFailure completes the future with err, provided it is still Pending.
func (f *Future) SetFailure(err error) bool {
	if err == nil {
		panic(errInvalidArgument)
	}
	ns := &state{kind: kindFailure, err: err}
	for {
		old := f.state.Load()
		if old.kind != kindPending {
			return false
		}
		if f.state.CompareAndSwap(old, ns) {
			f.drive()
			return true
		}
	}
}

// Cancel attempts to move the future from Pending or Delegating to
// Cancelled. If interruptIfRunning is true and the CAS wins, Hooks.
// InterruptTask runs exactly once before the completion driver. If the
// prior state was Delegating(target), target.Cancel(interruptIfRunning) is
// attempted best-effort afterward; a race loss there is ignored.
func (f *Future) Cancel(interruptIfRunning bool) bool {
	ns := &state{kind: kindCancelled, interrupt: interruptIfRunning}
	for {
		old := f.state.Load()
		if old.kind != kindPending && old.kind != kindDelegating {
			return false
		}
		if !f.state.CompareAndSwap(old, ns) {
			continue
		}
		if interruptIfRunning && f.hooks.InterruptTask != nil {
			f.hooks.InterruptTask()
		}
		f.drive()
		if old.kind == kindDelegating {
			old.target.Cancel(interruptIfRunning)
		}
		return true
	}
}

// SetFuture arranges for this future to mirror target's eventual outcome.
// Calling f.SetFuture(f) is rejected eagerly, as is any multi-hop chain
// that would loop back to f; both return false and leave f Pending (it can
// still be completed by another producer call) rather than deadlocking or
// recursing.
func (f *Future) SetFuture(target *Future) bool {
	if target == nil {
		panic(errInvalidArgument)
	}
	if target == f {
		return false
	}

	for {
		old := f.state.Load()
		if old.kind != kindPending {
			if old.kind == kindCancelled {
				target.Cancel(old.interrupt)
			}
			return false
		}

		if chainReaches(target, f) {
			// A cycle would be formed; leave f pending, as if target never
			// completes.
			return false
		}

		if ts := resolvedTerminal(target); ts != nil {
			ns := terminalCopy(ts)
			if f.state.CompareAndSwap(old, ns) {
				f.drive()
				return true
			}
			continue
		}

		ns := &state{kind: kindDelegating, target: target}
		if f.state.CompareAndSwap(old, ns) {
			f.registerDelegationListener(target)
			return true
		}
	}
}

// chainReaches reports whether walking start's own delegation chain
// (following the state.target pointer directly, since both futures belong
// to the same trusted package) ever reaches needle. It is used only to
// pre-empt forming a cycle; it cannot itself race-introduce one, since a
// cycle can only be completed by the call currently holding this check.
func chainReaches(start, needle *Future) bool {
	cur := start
	for cur != nil {
		if cur == needle {
			return true
		}
		s := cur.state.Load()
		if s.kind != kindDelegating {
			return false
		}
		cur = s.target
	}
	return false
}

// resolvedTerminal follows target's delegation chain and returns its
// terminal state if already resolved, or nil if any link in the chain is
// still pending/delegating-to-pending.
func resolvedTerminal(target *Future) *state {
	s := target.state.Load()
	for s.kind == kindDelegating {
		s = s.target.state.Load()
	}
	if s.kind.terminal() {
		return s
	}
	return nil
}

// terminalCopy adapts a resolved terminal state for installation on a
// different future. Cancelled inherited via delegation always has its
// interrupt bit cleared — only a future cancelled directly, via its own
// Cancel(true), reports WasInterrupted() == true.
func terminalCopy(ts *state) *state {
	if ts.kind == kindCancelled {
		return &state{kind: kindCancelled, err: ts.err}
	}
	return ts
}

// registerDelegationListener installs the internal listener that, when
// target resolves, completes f with target's terminal state. The marker is
// recognized by driveOnce/dispatchListener via listenerNode.delegate,
// so completion of a long delegation chain never recurses through an
// Executor.
func (f *Future) registerDelegationListener(target *Future) {
	target.addListener(&listenerNode{delegate: &delegateLink{target: target, dependent: f}})
}

// resolveDelegate completes d.dependent with d.target's terminal state, if
// the dependent is still delegating to exactly that target (a concurrent
// Cancel on dependent pre-empts this and is not an error — the race is
// simply lost). It returns dependent if this call won the race,
// so drive's trampoline can continue dependent's own completion iteratively
// instead of recursing.
func resolveDelegate(d *delegateLink) (dependent *Future) {
	defer func() {
		if r := recover(); r != nil {
			logRejection(fmt.Errorf("future: delegation resolution panic: %v", r))
			if installFallbackFailure(d.dependent, d.target) {
				dependent = d.dependent
			}
		}
	}()

	ts := resolvedTerminal(d.target)
	if ts == nil {
		// Should not happen: a listener on target only fires once target
		// is terminal. Defensive no-op.
		return nil
	}
	ns := terminalCopy(ts)

	old := d.dependent.state.Load()
	if old.kind != kindDelegating || old.target != d.target {
		return nil
	}
	if !d.dependent.state.CompareAndSwap(old, ns) {
		return nil
	}
	return d.dependent
}

// installFallbackFailure completes dependent with fallbackFailureErr,
// provided it is still delegating to target. Unlike SetFailure, it accepts
// a Delegating starting state (SetFailure only ever accepts Pending), since
// this is called after resolveDelegate itself panicked while dependent was
// already installed as Delegating — without this, dependent would stay
// delegating forever.
func installFallbackFailure(dependent, target *Future) bool {
	ns := &state{kind: kindFailure, err: fallbackFailureErr}
	for {
		old := dependent.state.Load()
		if old.kind != kindDelegating || old.target != target {
			return false
		}
		if dependent.state.CompareAndSwap(old, ns) {
			return true
		}
	}
}

// drive is the completion driver: iterative rather than recursive so a
// delegation chain of arbitrary length never grows the stack. Each
// future's driveOnce may hand back a dependent future whose own
// delegation just resolved, which is pushed onto the local work queue
// instead of being driven via a nested call.
func (f *Future) drive() {
	queue := []*Future{f}
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		queue = append(queue, cur.driveOnce()...)
	}
}

func (f *Future) driveOnce() []*Future {
	f.drainWaiters()

	listeners := f.drainListeners()
	var more []*Future
	for _, n := range listeners {
		if n.delegate != nil {
			if dep := resolveDelegate(n.delegate); dep != nil {
				more = append(more, dep)
			}
			continue
		}
		f.dispatch(n)
	}

	if f.hooks.AfterDone != nil {
		f.runAfterDone()
	}

	return more
}

func (f *Future) dispatch(n *listenerNode) {
	defer func() {
		if r := recover(); r != nil {
			logRejection(fmt.Errorf("future: listener dispatch panic: %v", r))
		}
	}()
	if err := n.exec.Execute(n.fn); err != nil {
		logRejection(err)
	}
}

func (f *Future) runAfterDone() {
	defer func() {
		if r := recover(); r != nil {
			logRejection(fmt.Errorf("future: AfterDone panic: %v", r))
		}
	}()
	f.hooks.AfterDone()
}
