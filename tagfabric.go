package tagfabric

import "github.com/wippyai/tagfabric/transport"

// Core types re-exported for callers that only need the primitives.
type (
	Address      = transport.Address
	Completion   = transport.Completion
	Worker       = transport.Worker
	Endpoint     = transport.Endpoint
	MemoryDomain = transport.MemoryDomain
)

const (
	MemoryHost    = transport.MemoryHost
	MemoryCUDA    = transport.MemoryCUDA
	MemoryROCm    = transport.MemoryROCm
	MemoryUnknown = transport.MemoryUnknown
)

// NewWorker constructs a worker bound to the process-wide transport context.
func NewWorker() (*Worker, error) {
	return transport.NewWorker()
}
