package transport

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/tagfabric/errors"
	"github.com/wippyai/tagfabric/transport/internal/wire"
)

// Worker drives progress on the fabric for a set of operations and issues raw
// receive primitives. Any goroutine may submit operations or call Progress
// concurrently; all internal state is synchronized.
//
// A Worker must outlive every Endpoint created from it and every Completion
// derived from its operations. Close all endpoints before closing the worker.
type Worker struct {
	ctx      *Context
	id       uuid.UUID
	addr     Address
	listener *wire.Listener
	log      *zap.Logger

	runCtx context.Context
	cancel context.CancelFunc

	// tag-matching state: posted receives and unexpected arrivals, exact
	// match on the tag, FIFO within a tag
	mu         sync.Mutex
	posted     map[uint64][]*postedRecv
	unexpected map[uint64][]*wire.Frame

	inbound     chan *wire.Frame
	completions chan *request

	connMu sync.Mutex
	conns  []*wire.Conn

	epMu      sync.Mutex
	endpoints int

	closed atomic.Bool
}

type postedRecv struct {
	buf []byte
	req *request
}

// opParams is the per-operation parameter block built by submit: resolved
// memory type, contiguous transfer size, and the request whose completion
// slot the fabric flips when the operation finishes.
type opParams struct {
	req  *request
	size int
	mem  wire.MemType
}

// NewWorker constructs a worker bound to the singleton transport context,
// configured for concurrent use from any goroutine.
func NewWorker() (*Worker, error) {
	c, err := Acquire()
	if err != nil {
		return nil, err
	}
	cfg := c.Config()

	l, err := wire.Listen(cfg.BindAddr, cfg.ALPN, cfg.MaxMessageSize, Logger())
	if err != nil {
		return nil, errors.WorkerCreate(err)
	}

	id := uuid.New()
	addr, err := encodeAddress(addressInfo{
		Proto:    addressProto,
		Network:  l.Addr().Network(),
		Addr:     l.Addr().String(),
		WorkerID: id.String(),
	})
	if err != nil {
		_ = l.Close()
		return nil, errors.WorkerCreate(err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		ctx:         c,
		id:          id,
		addr:        addr,
		listener:    l,
		log:         Logger().With(zap.String("worker", id.String())),
		runCtx:      runCtx,
		cancel:      cancel,
		posted:      make(map[uint64][]*postedRecv),
		unexpected:  make(map[uint64][]*wire.Frame),
		inbound:     make(chan *wire.Frame, cfg.InboundQueueDepth),
		completions: make(chan *request, cfg.InboundQueueDepth),
	}
	go w.acceptLoop()

	w.log.Debug("worker created", zap.String("addr", l.Addr().String()))
	return w, nil
}

// Address returns this worker's network address as an owned, self-contained
// byte sequence, decoupled from any internal buffer. Repeated calls return
// byte-identical sequences. Hand the bytes to a peer over an external
// rendezvous channel before that peer calls Connect.
func (w *Worker) Address() Address {
	out := make(Address, len(w.addr))
	copy(out, w.addr)
	return out
}

// Connect creates an endpoint bound to this worker and the given peer
// address. It does not block on handshake completion; the link is established
// lazily by the fabric on first use. Peer reachability is not validated here:
// connecting to a well-formed but stale address succeeds, and subsequent
// transfers simply never complete.
func (w *Worker) Connect(peer Address) (*Endpoint, error) {
	if w.closed.Load() {
		return nil, errors.Closed(errors.PhaseEndpoint, "worker")
	}
	info, err := decodeAddress(peer)
	if err != nil {
		return nil, err
	}

	ep := newEndpoint(w, info)
	w.epMu.Lock()
	w.endpoints++
	w.epMu.Unlock()
	return ep, nil
}

// Progress drives one step of the fabric's event processing: it drains
// inbound frames (matching them against posted receives or queueing them as
// unexpected) and fires completion callbacks for finished operations. It
// never blocks and returns once both queues are empty. Callers must invoke
// Progress repeatedly for any asynchronous operation on this worker to
// advance.
func (w *Worker) Progress() {
	for {
		select {
		case f := <-w.inbound:
			w.deliver(f)
		case r := <-w.completions:
			w.ctx.requests.complete(r)
		default:
			return
		}
	}
}

// RecvWithTag submits a non-blocking tagged receive matching any source, for
// size bytes into buf. If a matching unexpected message is already queued the
// returned handle is completed immediately; otherwise it completes during a
// later Progress call once a matching send arrives.
func (w *Worker) RecvWithTag(buf []byte, size int, tag uint64, domain MemoryDomain) (*Completion, error) {
	if w.closed.Load() {
		return nil, errors.Closed(errors.PhaseTransfer, "worker")
	}
	if size < 0 || size > len(buf) {
		return nil, errors.Rejected("receive size %d outside buffer of %d bytes", size, len(buf))
	}
	if size > w.ctx.cfg.MaxMessageSize {
		return nil, errors.Rejected("receive size %d exceeds max message size %d", size, w.ctx.cfg.MaxMessageSize)
	}

	return w.submit(size, domain, func(p *opParams) (bool, error) {
		return w.postRecv(buf[:size], tag, p)
	})
}

// submit is the single submission primitive shared by every send and receive
// path: it builds the per-operation parameter block, invokes issue to perform
// the native operation, and wraps the outcome in a Completion. Operations the
// fabric finishes at submission time return an already-completed handle with
// no request attached; truly asynchronous submissions trigger one progress
// step before returning.
func (w *Worker) submit(size int, domain MemoryDomain, issue func(*opParams) (bool, error)) (*Completion, error) {
	comp := &Completion{}
	req := w.ctx.requests.get(comp)
	p := &opParams{req: req, size: size, mem: wireMemType(domain)}

	immediate, err := issue(p)
	if err != nil {
		w.ctx.requests.put(req)
		return nil, err
	}
	if immediate {
		w.ctx.requests.put(req)
		return newCompleted(), nil
	}

	w.Progress()
	return comp, nil
}

// postRecv matches against the unexpected queue or posts the receive.
// Reports true when the receive completed synchronously.
func (w *Worker) postRecv(buf []byte, tag uint64, p *opParams) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if q := w.unexpected[tag]; len(q) > 0 {
		f := q[0]
		if len(q) == 1 {
			delete(w.unexpected, tag)
		} else {
			w.unexpected[tag] = q[1:]
		}
		copy(buf, f.Payload)
		return true, nil
	}

	w.posted[tag] = append(w.posted[tag], &postedRecv{buf: buf, req: p.req})
	return false, nil
}

// deliver matches one inbound frame against posted receives, or stores it as
// unexpected. Runs inside Progress.
func (w *Worker) deliver(f *wire.Frame) {
	w.mu.Lock()
	if q := w.posted[f.Tag]; len(q) > 0 {
		pr := q[0]
		if len(q) == 1 {
			delete(w.posted, f.Tag)
		} else {
			w.posted[f.Tag] = q[1:]
		}
		copy(pr.buf, f.Payload)
		w.mu.Unlock()
		w.ctx.requests.complete(pr.req)
		return
	}
	w.unexpected[f.Tag] = append(w.unexpected[f.Tag], f)
	w.mu.Unlock()
}

// postCompletion hands a finished operation's request to the completion queue
// so the next Progress call fires its callback.
func (w *Worker) postCompletion(r *request) {
	select {
	case w.completions <- r:
	case <-w.runCtx.Done():
		// worker tearing down: fire inline so the request cannot leak
		w.ctx.requests.complete(r)
	}
}

func (w *Worker) acceptLoop() {
	for {
		c, err := w.listener.Accept(w.runCtx)
		if err != nil {
			return
		}
		w.connMu.Lock()
		w.conns = append(w.conns, c)
		w.connMu.Unlock()
		go w.readLoop(c)
	}
}

func (w *Worker) readLoop(c *wire.Conn) {
	for {
		f, err := c.ReadFrame()
		if err != nil {
			w.log.Debug("peer link closed", zap.Error(err))
			return
		}
		select {
		case w.inbound <- f:
		case <-w.runCtx.Done():
			return
		}
	}
}

func (w *Worker) releaseEndpoint() {
	w.epMu.Lock()
	w.endpoints--
	w.epMu.Unlock()
}

// Close releases the worker's native resources. Every endpoint created from
// this worker must be closed first; Close fails otherwise rather than leaving
// dependents pointing at a dead worker.
func (w *Worker) Close() error {
	w.epMu.Lock()
	n := w.endpoints
	w.epMu.Unlock()
	if n > 0 {
		return errors.Busy(errors.PhaseWorker, fmt.Sprintf("%d endpoints still open", n))
	}

	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	w.cancel()

	err := w.listener.Close()
	w.connMu.Lock()
	for _, c := range w.conns {
		err = multierr.Append(err, c.Close())
	}
	w.conns = nil
	w.connMu.Unlock()

	w.log.Debug("worker closed")
	return err
}
