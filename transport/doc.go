// Package transport implements tag-addressed asynchronous point-to-point
// message transport: the communication substrate of a distributed
// computation runtime.
//
// # Architecture
//
// Three layered lifetimes, outermost first:
//
//	Context    - process-wide singleton wrapping the fabric's global state;
//	             created lazily on first use, lives for the process
//	Worker     - drives progress for a set of operations, owns the local
//	             network address, issues raw receive primitives
//	Endpoint   - a connection handle to one remote peer, created from a
//	             Worker and the peer's Address
//
// A Completion tracks one in-flight operation and moves Pending→Completed
// exactly once.
//
// # Quick Start
//
//	w, err := transport.NewWorker()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	// Hand w.Address() to the peer over your rendezvous channel, and
//	// obtain the peer's address the same way.
//	ep, err := w.Connect(peerAddr)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ep.Close()
//
//	buf := []byte("hello")
//	c, err := ep.SendWithTag(buf, len(buf), 7, transport.MemoryHost)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for !c.Completed() {
//	    w.Progress()
//	}
//
// # Progress Model
//
// The fabric is poll-driven: nothing completes unless some goroutine calls
// Worker.Progress. Submission paths pump one opportunistic progress step
// after issuing an asynchronous operation, but callers own the loop that
// drives a handle to completion. Any goroutine may submit operations or call
// Progress concurrently.
//
// # Teardown Order
//
// Close endpoints first, then the worker. Endpoint.Close is a flush-mode
// close: everything already submitted on the endpoint is delivered before the
// link is released, busy-polling progress while it drains. A close that
// cannot proceed abandons the link state with a single warning rather than
// failing.
//
// # Tag Matching
//
// Tags are opaque uint64 values matched exactly, with no wildcard. Receives
// are scoped to the worker, not to a specific peer: two endpoints sharing a
// worker share one matching table. This mirrors the scoping of the original
// fabric contract and is flagged on Endpoint.RecvWithTag.
//
// # Memory Domains
//
// Every transfer carries a coarse device-family tag (host, CUDA, ROCm) so the
// fabric can pick the data-movement path. Unrecognized domains map to an
// "unknown" memory type that is accepted but treated as a degraded slow path.
package transport
