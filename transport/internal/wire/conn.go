package wire

import (
	"bufio"
	"context"
	"net"
	"sync"

	"github.com/quic-go/quic-go"
)

// Conn carries tagged frames over one bidirectional QUIC stream.
// ReadFrame is single-reader; WriteFrame is safe for concurrent callers.
type Conn struct {
	qc quic.Connection
	st quic.Stream
	br *bufio.Reader
	bw *bufio.Writer

	wmu        sync.Mutex
	maxPayload int
}

func newConn(qc quic.Connection, st quic.Stream, maxPayload int) *Conn {
	return &Conn{
		qc:         qc,
		st:         st,
		br:         bufio.NewReader(st),
		bw:         bufio.NewWriter(st),
		maxPayload: maxPayload,
	}
}

// Dial connects to a peer worker's listener and opens the frame stream.
// The QUIC handshake completes before Dial returns.
func Dial(ctx context.Context, addr, alpn string, maxPayload int) (*Conn, error) {
	qc, err := quic.DialAddr(ctx, addr, clientTLSConfig(alpn), &quic.Config{})
	if err != nil {
		return nil, err
	}
	st, err := qc.OpenStreamSync(ctx)
	if err != nil {
		_ = qc.CloseWithError(0, "stream open failed")
		return nil, err
	}
	return newConn(qc, st, maxPayload), nil
}

// WriteFrame sends one frame, flushing the stream.
func (c *Conn) WriteFrame(f *Frame) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return WriteFrame(c.bw, f, c.maxPayload)
}

// ReadFrame blocks until the next frame arrives or the stream fails.
func (c *Conn) ReadFrame() (*Frame, error) {
	return ReadFrame(c.br, c.maxPayload)
}

func (c *Conn) LocalAddr() net.Addr  { return c.qc.LocalAddr() }
func (c *Conn) RemoteAddr() net.Addr { return c.qc.RemoteAddr() }

// Close tears down the stream and the connection. Frames already handed to
// WriteFrame have been flushed; QUIC delivers them before the close completes.
func (c *Conn) Close() error {
	_ = c.st.Close()
	return c.qc.CloseWithError(0, "")
}
