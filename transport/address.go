package transport

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/wippyai/tagfabric/errors"
)

// addressProto versions the address wire shape; a peer built against an
// incompatible layout is rejected at Connect time.
const addressProto = "tagfabric/1"

// Address is an opaque, self-contained byte sequence identifying a worker's
// network endpoint. It is safe to serialize and hand to a remote peer over an
// external rendezvous channel; it has no identity beyond its bytes.
type Address []byte

// addressInfo is the decoded form. Internal only: callers treat Address as
// opaque bytes.
type addressInfo struct {
	Proto    string `cbor:"proto"`
	Network  string `cbor:"network"`
	Addr     string `cbor:"addr"`
	WorkerID string `cbor:"worker_id"`
}

var addressEncMode cbor.EncMode

func init() {
	// Deterministic encoding keeps repeated Address() calls byte-identical.
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	addressEncMode = em
}

func encodeAddress(info addressInfo) (Address, error) {
	b, err := addressEncMode.Marshal(info)
	if err != nil {
		return nil, errors.New(errors.PhaseWorker, errors.KindAddress).
			Detail("encode worker address").
			Cause(err).
			Build()
	}
	return Address(b), nil
}

func decodeAddress(a Address) (addressInfo, error) {
	var info addressInfo
	if len(a) == 0 {
		return info, errors.AddressInvalid("empty address", nil)
	}
	if err := cbor.Unmarshal(a, &info); err != nil {
		return info, errors.AddressInvalid("decode address bytes", err)
	}
	if info.Proto != addressProto {
		return info, errors.AddressInvalid("unsupported address protocol "+info.Proto, nil)
	}
	if info.Addr == "" {
		return info, errors.AddressInvalid("address missing network endpoint", nil)
	}
	return info, nil
}
