package transport

import "sync"

// request is the per-operation bookkeeping block the fabric carries alongside
// an asynchronous operation: exactly one completion slot. Blocks are pooled
// so steady-state submission allocates nothing.
type request struct {
	comp *Completion
}

// requestPool is registered once at context initialization. Its New hook is
// the analogue of the fabric's request_init callback: a fresh block starts
// with no completion attached; release (the request_cleanup analogue) clears
// the slot before the block is recycled.
type requestPool struct {
	p sync.Pool
}

func newRequestPool() *requestPool {
	rp := &requestPool{}
	rp.p.New = func() any { return new(request) }
	return rp
}

func (rp *requestPool) get(c *Completion) *request {
	r := rp.p.Get().(*request)
	r.comp = c
	return r
}

func (rp *requestPool) put(r *request) {
	r.comp = nil
	rp.p.Put(r)
}

// complete fires the completion callback for r and recycles the block.
// Invoked from progress processing, or at delivery time for a receive matched
// under the worker lock.
func (rp *requestPool) complete(r *request) {
	if c := r.comp; c != nil {
		c.done.Store(true)
	}
	rp.put(r)
}
