package transport

import (
	"bytes"
	"errors"
	"testing"

	tferrors "github.com/wippyai/tagfabric/errors"
)

func TestWorker_AddressDeterministic(t *testing.T) {
	w, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer w.Close()

	a := w.Address()
	b := w.Address()
	if !bytes.Equal(a, b) {
		t.Error("two Address calls returned different bytes")
	}

	// The returned sequence is owned by the caller: mutating it must not
	// affect later calls.
	if len(a) > 0 {
		a[0] ^= 0xFF
	}
	if !bytes.Equal(w.Address(), b) {
		t.Error("Address bytes are not decoupled from worker state")
	}
}

func TestWorker_AddressDecodes(t *testing.T) {
	w, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer w.Close()

	info, err := decodeAddress(w.Address())
	if err != nil {
		t.Fatalf("worker address does not decode: %v", err)
	}
	if info.Addr == "" || info.WorkerID == "" {
		t.Errorf("incomplete address info: %+v", info)
	}
}

func TestWorker_ConnectRejectsGarbage(t *testing.T) {
	w, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer w.Close()

	if _, err := w.Connect(Address("garbage")); err == nil {
		t.Fatal("Connect with garbage bytes should fail")
	}
}

func TestWorker_RecvValidation(t *testing.T) {
	w, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer w.Close()

	buf := make([]byte, 4)
	if _, err := w.RecvWithTag(buf, 8, 1, MemoryHost); err == nil {
		t.Error("receive larger than buffer should be rejected")
	}
	if _, err := w.RecvWithTag(buf, -1, 1, MemoryHost); err == nil {
		t.Error("negative size should be rejected")
	}

	// size zero is a valid transfer
	c, err := w.RecvWithTag(buf, 0, 1, MemoryHost)
	if err != nil {
		t.Fatalf("zero-size receive rejected: %v", err)
	}
	if c.Completed() {
		t.Error("unmatched receive should be pending")
	}
}

func TestWorker_CloseWithOpenEndpoint(t *testing.T) {
	a, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	b, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	defer b.Close()

	ep, err := a.Connect(b.Address())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	err = a.Close()
	if err == nil {
		t.Fatal("Close with a live endpoint should fail")
	}
	if !errors.Is(err, tferrors.Busy(tferrors.PhaseWorker, "")) {
		t.Errorf("expected busy error, got %v", err)
	}

	if err := ep.Close(); err != nil {
		t.Fatalf("endpoint Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close after releasing endpoints: %v", err)
	}

	// idempotent
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestWorker_OperationsAfterClose(t *testing.T) {
	w, err := NewWorker()
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	buf := make([]byte, 4)
	if _, err := w.RecvWithTag(buf, 4, 1, MemoryHost); err == nil {
		t.Error("receive on closed worker should fail")
	}
	if _, err := w.Connect(Address("x")); err == nil {
		t.Error("connect on closed worker should fail")
	}
}
