// Package tagfabric provides point-to-point, tag-addressed asynchronous
// message transport over a QUIC fabric, for use as the communication
// substrate of a distributed computation runtime.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	tagfabric/           Root package with re-exported core types
//	├── transport/       Context, Worker, Endpoint, Completion, Address
//	│   └── internal/wire   QUIC listener/conn and the tagged frame codec
//	├── config/          Transport tuning (TAGFABRIC env namespace)
//	├── errors/          Structured error types
//	└── cmd/pingpong/    Demo and self-test CLI
//
// # Quick Start
//
// One side:
//
//	w, _ := transport.NewWorker()
//	defer w.Close()
//	publish(w.Address()) // your rendezvous channel
//
//	buf := make([]byte, 16)
//	c, _ := w.RecvWithTag(buf, len(buf), 1, transport.MemoryHost)
//	for !c.Completed() {
//	    w.Progress()
//	}
//
// The other side:
//
//	w, _ := transport.NewWorker()
//	defer w.Close()
//	ep, _ := w.Connect(lookup()) // peer address from rendezvous
//	defer ep.Close()
//
//	msg := []byte("ping")
//	c, _ := ep.SendWithTag(msg, len(msg), 1, transport.MemoryHost)
//	for !c.Completed() {
//	    w.Progress()
//	}
//
// # Scope
//
// This is the primitive layer only: one unit of async transfer plus the
// machinery to keep the network progressing and tear resources down safely.
// Flow control, ordering across tags, retransmission above the wire's own,
// and collective algorithms belong to the protocol layer above.
package tagfabric
