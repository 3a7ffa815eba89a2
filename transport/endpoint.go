package transport

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/tagfabric/errors"
	"github.com/wippyai/tagfabric/transport/internal/wire"
)

// Endpoint is a connection handle to one remote peer, created from a worker
// and the peer's address. The underlying link is dialed lazily on first send.
// Sends and receives may be issued concurrently; all real concurrency control
// is delegated to the owning worker.
type Endpoint struct {
	worker *Worker
	peer   addressInfo
	log    *zap.Logger

	qmu     sync.RWMutex
	sendq   chan *sendOp
	closing bool

	writerOnce    sync.Once
	writerStarted atomic.Bool

	failed  atomic.Bool
	flushed atomic.Bool
	warned  atomic.Bool

	closeOnce sync.Once
}

// sendOp is one queued outbound operation. req is nil for inject sends,
// whose handles completed at submission.
type sendOp struct {
	frame *wire.Frame
	req   *request
}

func newEndpoint(w *Worker, peer addressInfo) *Endpoint {
	return &Endpoint{
		worker: w,
		peer:   peer,
		log:    Logger().With(zap.String("peer", peer.Addr)),
		sendq:  make(chan *sendOp, w.ctx.cfg.SendQueueDepth),
	}
}

// SendWithTag submits a non-blocking tagged send of size bytes from buf to
// this endpoint's peer. Payloads at or below the configured inject threshold
// are copied and the handle completes at submission; larger payloads are sent
// zero-copy, so buf must stay untouched until the handle reports completed.
func (e *Endpoint) SendWithTag(buf []byte, size int, tag uint64, domain MemoryDomain) (*Completion, error) {
	if size < 0 || size > len(buf) {
		return nil, errors.Rejected("send size %d outside buffer of %d bytes", size, len(buf))
	}
	if size > e.worker.ctx.cfg.MaxMessageSize {
		return nil, errors.Rejected("send size %d exceeds max message size %d", size, e.worker.ctx.cfg.MaxMessageSize)
	}

	return e.worker.submit(size, domain, func(p *opParams) (bool, error) {
		return e.issueSend(buf[:size], tag, p)
	})
}

// RecvWithTag submits a tagged receive via the owning worker.
//
// Known scoping gap, kept deliberately: the receive is posted against the
// shared worker, not this peer. Any sender reaching the same worker with a
// matching tag may satisfy it.
func (e *Endpoint) RecvWithTag(buf []byte, size int, tag uint64, domain MemoryDomain) (*Completion, error) {
	e.qmu.RLock()
	closing := e.closing
	e.qmu.RUnlock()
	if closing {
		return nil, errors.Closed(errors.PhaseTransfer, "endpoint")
	}
	return e.worker.RecvWithTag(buf, size, tag, domain)
}

func (e *Endpoint) issueSend(payload []byte, tag uint64, p *opParams) (bool, error) {
	e.qmu.RLock()
	defer e.qmu.RUnlock()
	if e.closing {
		return false, errors.Closed(errors.PhaseTransfer, "endpoint")
	}
	e.startWriter()

	if len(payload) <= e.worker.ctx.cfg.InjectThreshold && p.mem != wire.MemUnknown && !e.failed.Load() {
		// Inject fast path: the fabric takes a copy, the caller's buffer is
		// immediately reusable. A failed link never completes transfers, so
		// it gets no fast path.
		cp := make([]byte, len(payload))
		copy(cp, payload)
		select {
		case e.sendq <- &sendOp{frame: &wire.Frame{Tag: tag, Mem: p.mem, Payload: cp}}:
			return true, nil
		default:
			// queue slot not immediately available: fall through to the
			// asynchronous path
		}
	}
	if p.mem == wire.MemUnknown {
		e.log.Debug("transfer tagged with unknown memory domain, slow path", zap.Uint64("tag", tag))
	}

	select {
	case e.sendq <- &sendOp{frame: &wire.Frame{Tag: tag, Mem: p.mem, Payload: payload}, req: p.req}:
		return false, nil
	default:
		return false, errors.Rejected("send queue full (%d outstanding)", cap(e.sendq))
	}
}

func (e *Endpoint) startWriter() {
	e.writerOnce.Do(func() {
		e.writerStarted.Store(true)
		go e.writeLoop()
	})
}

func (e *Endpoint) writeLoop() {
	defer e.flushed.Store(true)

	cfg := e.worker.ctx.cfg
	conn, err := wire.Dial(context.Background(), e.peer.Addr, cfg.ALPN, cfg.MaxMessageSize)
	if err != nil {
		e.fail("dial peer", err)
		for range e.sendq {
			// Submitted operations stay pending: against an unreachable peer
			// a transfer never completes.
		}
		return
	}
	defer conn.Close()

	for op := range e.sendq {
		if e.failed.Load() {
			continue
		}
		if err := conn.WriteFrame(op.frame); err != nil {
			e.fail("write frame", err)
			continue
		}
		if op.req != nil {
			e.worker.postCompletion(op.req)
		}
	}
}

func (e *Endpoint) fail(op string, err error) {
	if e.failed.CompareAndSwap(false, true) {
		e.log.Debug("endpoint entered failed state", zap.String("op", op), zap.Error(err))
	}
}

// Close performs a flush-mode close: it stops accepting new sends, lets every
// previously submitted operation finish, then releases the link. When the
// flush is asynchronous the calling goroutine blocks, repeatedly driving the
// worker's progress and polling close status, until the flush completes — an
// unresponsive peer can stall this indefinitely.
//
// If the close cannot proceed because the link already failed, the native
// state is abandoned with a single warning instead; teardown never panics and
// never blocks on a dead link. Close is idempotent.
func (e *Endpoint) Close() error {
	e.closeOnce.Do(e.doClose)
	return nil
}

func (e *Endpoint) doClose() {
	e.qmu.Lock()
	e.closing = true
	close(e.sendq)
	started := e.writerStarted.Load()
	e.qmu.Unlock()

	defer e.worker.releaseEndpoint()

	if !started {
		// nothing was ever submitted and no link exists
		return
	}
	if e.failed.Load() {
		e.warnAbandon()
		return
	}

	for !e.flushed.Load() {
		if e.failed.Load() {
			e.warnAbandon()
			return
		}
		e.worker.Progress()
		runtime.Gosched()
	}

	// The writer can fail between the last loop check and raising the flush
	// flag; a failed close must still surface its warning.
	if e.failed.Load() {
		e.warnAbandon()
	}
}

func (e *Endpoint) warnAbandon() {
	if e.warned.CompareAndSwap(false, true) {
		e.log.Warn("endpoint close failed, leaking link state", zap.String("peer", e.peer.Addr))
	}
}
