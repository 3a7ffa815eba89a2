package wire

import (
	"context"
	"net"
	"sync"

	"github.com/quic-go/quic-go"
	"go.uber.org/zap"
)

// Listener accepts peer links for one worker. Each accepted connection is
// surfaced as a *Conn once the dialer has opened its frame stream.
type Listener struct {
	ql         *quic.Listener
	laddr      net.Addr
	maxPayload int
	log        *zap.Logger

	newCh     chan *Conn
	closeOnce sync.Once
	closeCh   chan struct{}
	cancel    context.CancelFunc
}

// Listen binds a QUIC listener on addr. Port 0 picks a free port; the bound
// address is available from Addr.
func Listen(addr, alpn string, maxPayload int, log *zap.Logger) (*Listener, error) {
	tlsConf, err := serverTLSConfig(alpn)
	if err != nil {
		return nil, err
	}
	ql, err := quic.ListenAddr(addr, tlsConf, &quic.Config{})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	l := &Listener{
		ql:         ql,
		laddr:      ql.Addr(),
		maxPayload: maxPayload,
		log:        log,
		newCh:      make(chan *Conn, 8),
		closeCh:    make(chan struct{}),
		cancel:     cancel,
	}
	go l.acceptLoop(ctx)
	return l, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr { return l.laddr }

// Accept returns the next inbound peer link.
func (l *Listener) Accept(ctx context.Context) (*Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closeCh:
		return nil, net.ErrClosed
	case c := <-l.newCh:
		return c, nil
	}
}

// Close stops accepting and releases the underlying listener.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.closeCh)
		l.cancel()
		err = l.ql.Close()
	})
	return err
}

func (l *Listener) acceptLoop(ctx context.Context) {
	for {
		qc, err := l.ql.Accept(ctx)
		if err != nil {
			return
		}
		// The dialer opens the frame stream; wait for it off the accept path
		// so one slow handshake cannot starve other peers.
		go func() {
			st, err := qc.AcceptStream(ctx)
			if err != nil {
				l.log.Debug("inbound link dropped before stream open",
					zap.String("remote", qc.RemoteAddr().String()), zap.Error(err))
				_ = qc.CloseWithError(0, "no stream")
				return
			}
			c := newConn(qc, st, l.maxPayload)
			select {
			case l.newCh <- c:
			case <-l.closeCh:
				_ = c.Close()
			case <-ctx.Done():
				_ = c.Close()
			}
		}()
	}
}
