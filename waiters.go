package future

import "sync/atomic"

// waiterNode is a lock-free Treiber-stack node for a goroutine parked in
// Get/GetTimeout. Parking is modeled as a blocking receive from ch, which
// the completion driver closes exactly once (closing, rather than sending,
// lets every waiter wake even though a waiter may have already removed
// itself — a close on an already-abandoned channel is still safe to select
// on, it just never happens twice because drainWaiters visits each node at
// most once).
//
// removed is the per-node tombstone bit: flipping it tells a concurrent
// removal pass to splice this node out. drainWaiters does not check it and
// closes the channel of every node it captures, removed or not.
type waiterNode struct {
	ch      chan struct{}
	removed atomic.Bool
	next    atomic.Pointer[waiterNode]
}

func newWaiterNode() *waiterNode {
	return &waiterNode{ch: make(chan struct{})}
}

// waitersTombstone replaces Future.waiters once completion has drained the
// stack; its identity (never its fields) is the signal that no further
// waiter may be pushed.
var waitersTombstone = &waiterNode{}

// pushWaiter attempts to push n onto the waiter stack. It returns false if
// the stack has already been drained (i.e. the future is terminal), in
// which case the caller must not park.
func (f *Future) pushWaiter(n *waiterNode) bool {
	for {
		head := f.waiters.Load()
		if head == waitersTombstone {
			return false
		}
		n.next.Store(head)
		if f.waiters.CompareAndSwap(head, n) {
			return true
		}
	}
}

// drainWaiters swaps the waiter stack for the tombstone and wakes every
// node captured in the swap, exactly once each.
func (f *Future) drainWaiters() {
	head := f.waiters.Swap(waitersTombstone)
	for n := head; n != nil; {
		next := n.next.Load()
		close(n.ch)
		n = next
	}
}

// removeWaiter unlinks n from the waiter stack after a timed-out or
// interrupted Get gives up on it. It marks n removed, then walks from the
// head splicing out every tombstoned node it encounters, restarting from
// the head if a concurrent remover raced the same predecessor out from
// under it. If the head observed is already the completion tombstone, the
// caller lost the race against completion and n will be (or already has
// been) woken by drainWaiters regardless, so there is nothing left to
// splice.
func (f *Future) removeWaiter(n *waiterNode) {
	n.removed.Store(true)

restart:
	head := f.waiters.Load()
	if head == nil || head == waitersTombstone {
		return
	}

	if head.removed.Load() {
		next := head.next.Load()
		if !f.waiters.CompareAndSwap(head, next) {
			goto restart
		}
		goto restart
	}

	prev := head
	curr := head.next.Load()
	for curr != nil {
		if curr == waitersTombstone {
			return
		}
		next := curr.next.Load()
		if curr.removed.Load() {
			prev.next.Store(next)
			if prev.removed.Load() {
				goto restart
			}
			curr = next
			continue
		}
		prev = curr
		curr = next
	}
}
