package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the transport lifecycle the error occurred
type Phase string

const (
	PhaseInit     Phase = "init"     // context initialization
	PhaseConfig   Phase = "config"   // configuration loading
	PhaseWorker   Phase = "worker"   // worker construction / teardown
	PhaseEndpoint Phase = "endpoint" // endpoint construction
	PhaseTransfer Phase = "transfer" // send / receive submission
	PhaseClose    Phase = "close"    // flush-mode close
)

// Kind categorizes the error
type Kind string

const (
	KindConfig   Kind = "config"   // bad or unreadable configuration
	KindFabric   Kind = "fabric"   // underlying fabric/wire failure
	KindAddress  Kind = "address"  // malformed peer address
	KindClosed   Kind = "closed"   // operation on a closed handle
	KindBusy     Kind = "busy"     // dependents still alive
	KindRejected Kind = "rejected" // submission rejected at the boundary
)

// Error is the structured error type used throughout tagfabric
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Status string // native status text from the fabric, when available
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Status != "" {
		b.WriteString(" (status: ")
		b.WriteString(e.Status)
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Status sets the native status text
func (b *Builder) Status(s string) *Builder {
	b.err.Status = s
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InitFailed creates a fatal context-initialization error.
// Surfaced to the first caller that triggers lazy initialization.
func InitFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindFabric,
		Detail: detail,
		Cause:  cause,
		Status: statusOf(cause),
	}
}

// ConfigInvalid creates a configuration error
func ConfigInvalid(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindConfig,
		Detail: detail,
		Cause:  cause,
	}
}

// WorkerCreate creates a worker-construction error
func WorkerCreate(cause error) *Error {
	return &Error{
		Phase:  PhaseWorker,
		Kind:   KindFabric,
		Detail: "create worker",
		Cause:  cause,
		Status: statusOf(cause),
	}
}

// EndpointCreate creates an endpoint-construction error
func EndpointCreate(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEndpoint,
		Kind:   KindFabric,
		Detail: detail,
		Cause:  cause,
		Status: statusOf(cause),
	}
}

// AddressInvalid creates a malformed-address error
func AddressInvalid(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEndpoint,
		Kind:   KindAddress,
		Detail: detail,
		Cause:  cause,
	}
}

// Closed creates an operation-on-closed-handle error
func Closed(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s is closed", what),
	}
}

// Busy creates a dependents-still-alive error
func Busy(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBusy,
		Detail: detail,
	}
}

// Rejected creates a submission-rejected error
func Rejected(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseTransfer,
		Kind:   KindRejected,
		Detail: fmt.Sprintf(detail, args...),
	}
}

func statusOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
