package transport

import (
	"sync"

	"github.com/wippyai/tagfabric/config"
	"github.com/wippyai/tagfabric/errors"
)

// Context is the process-wide transport context: configuration plus the
// pre-registered request bookkeeping pool every operation allocates from.
// Exactly one instance exists per process, created lazily on first use and
// immutable afterwards, so it is safe for concurrent read-only use.
type Context struct {
	cfg      *config.Config
	requests *requestPool

	closeOnce sync.Once
}

var (
	globalCtx  *Context
	globalErr  error
	globalOnce sync.Once
)

// Acquire returns the singleton transport context, performing one-time
// initialization on first call. Initialization reads the TAGFABRIC
// configuration namespace and registers the request pool; failure is fatal
// for the process and is returned to every caller. Concurrent callers all
// receive the identical *Context.
func Acquire() (*Context, error) {
	globalOnce.Do(func() {
		globalCtx, globalErr = newContext()
	})
	return globalCtx, globalErr
}

func newContext() (*Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.InitFailed("read transport config", err)
	}
	return &Context{
		cfg:      cfg,
		requests: newRequestPool(),
	}, nil
}

// Config returns the transport tuning options read at initialization.
func (c *Context) Config() *config.Config {
	return c.cfg
}

// Close releases the context. It is idempotent and intended to run exactly
// once, at process teardown, by whoever owns process lifetime; library
// clients never call it mid-run. All workers must be closed first.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		Logger().Debug("transport context released")
	})
	return nil
}
