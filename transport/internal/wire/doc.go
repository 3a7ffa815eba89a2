// Package wire implements the fabric substrate for tagfabric: a QUIC
// listener/connection pair carrying tagged, length-prefixed message frames
// over a single bidirectional stream per peer link.
//
// The wire layer knows nothing about matching, completion, or lifetimes; it
// moves frames. TLS uses an ephemeral self-signed certificate and client-side
// verification is skipped: peer identity is an application-layer concern
// (addresses travel over a trusted out-of-band rendezvous channel).
package wire
