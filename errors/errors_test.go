package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseWorker,
				Kind:   KindFabric,
				Detail: "create worker",
				Status: "listen udp: address in use",
			},
			contains: []string{"[worker]", "fabric", "create worker", "address in use"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTransfer,
				Kind:  KindRejected,
			},
			contains: []string{"[transfer]", "rejected"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInit,
				Kind:   KindFabric,
				Detail: "init fabric context",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[init]", "fabric", "init fabric context", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WorkerCreate(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause through Unwrap")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	a := Closed(PhaseTransfer, "endpoint")
	b := Closed(PhaseTransfer, "worker")
	c := Busy(PhaseWorker, "endpoints still open")

	if !errors.Is(a, b) {
		t.Error("errors with same Phase/Kind should match")
	}
	if errors.Is(a, c) {
		t.Error("errors with different Phase/Kind should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("connection refused")
	err := New(PhaseEndpoint, KindFabric).
		Detail("dial %s", "127.0.0.1:9").
		Status("refused").
		Cause(cause).
		Build()

	if err.Phase != PhaseEndpoint || err.Kind != KindFabric {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "dial 127.0.0.1:9" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if err.Unwrap() != cause {
		t.Error("cause not set")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	cause := errors.New("boom")

	if err := InitFailed("read config", cause); err.Phase != PhaseInit || err.Status == "" {
		t.Error("InitFailed should carry phase init and native status")
	}
	if err := EndpointCreate("create endpoint", cause); err.Phase != PhaseEndpoint {
		t.Error("EndpointCreate should carry phase endpoint")
	}
	if err := AddressInvalid("bad bytes", nil); err.Kind != KindAddress {
		t.Error("AddressInvalid should carry kind address")
	}
	if err := Rejected("size %d exceeds buffer %d", 10, 5); err.Detail != "size 10 exceeds buffer 5" {
		t.Errorf("Rejected formatting: %q", err.Detail)
	}
}
