package transport

import (
	"testing"

	"github.com/wippyai/tagfabric/transport/internal/wire"
)

func TestWireMemType(t *testing.T) {
	tests := []struct {
		domain MemoryDomain
		want   wire.MemType
	}{
		{MemoryHost, wire.MemHost},
		{MemoryCUDA, wire.MemCUDA},
		{MemoryROCm, wire.MemROCm},
		{MemoryUnknown, wire.MemUnknown},
		{MemoryDomain(42), wire.MemUnknown}, // unmapped tags degrade to unknown
	}

	for _, tt := range tests {
		if got := wireMemType(tt.domain); got != tt.want {
			t.Errorf("wireMemType(%s) = %d, want %d", tt.domain, got, tt.want)
		}
	}
}

func TestMemoryDomain_String(t *testing.T) {
	if MemoryHost.String() != "host" || MemoryCUDA.String() != "cuda" || MemoryROCm.String() != "rocm" {
		t.Error("unexpected domain names")
	}
	if MemoryDomain(42).String() != "unknown" {
		t.Error("unmapped domain should stringify as unknown")
	}
}
