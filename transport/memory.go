package transport

import "github.com/wippyai/tagfabric/transport/internal/wire"

// MemoryDomain identifies the class of memory a transfer buffer lives in, so
// the fabric can select the matching data-movement path.
type MemoryDomain uint8

const (
	MemoryHost MemoryDomain = iota
	MemoryCUDA
	MemoryROCm
	MemoryUnknown
)

func (d MemoryDomain) String() string {
	switch d {
	case MemoryHost:
		return "host"
	case MemoryCUDA:
		return "cuda"
	case MemoryROCm:
		return "rocm"
	default:
		return "unknown"
	}
}

// wireMemType maps a caller-supplied device-family tag to the fabric's memory
// type enumeration. Unrecognized domains resolve to unknown, which the fabric
// treats as a degraded slow path rather than an error.
func wireMemType(d MemoryDomain) wire.MemType {
	switch d {
	case MemoryHost:
		return wire.MemHost
	case MemoryCUDA:
		return wire.MemCUDA
	case MemoryROCm:
		return wire.MemROCm
	default:
		return wire.MemUnknown
	}
}
