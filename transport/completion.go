package transport

import "sync/atomic"

// Completion tracks one in-flight or completed asynchronous operation.
// It moves from pending to completed exactly once and never back.
//
// For operations the fabric finishes at submission time the handle is created
// already completed, with no request block attached. For truly asynchronous
// operations the flag is flipped by the completion callback during some
// Progress call, possibly on a different goroutine than the submitter.
type Completion struct {
	done atomic.Bool
}

// Completed reports whether the operation has finished. Once true, the
// operation's buffer contents are valid (receive) or consumed (send).
func (c *Completion) Completed() bool {
	return c.done.Load()
}

func newCompleted() *Completion {
	c := &Completion{}
	c.done.Store(true)
	return c
}
