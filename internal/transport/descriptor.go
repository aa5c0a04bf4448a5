// If you are AI: This file defines the transport descriptor and the
// per-session transport Context interface. Grounded on transport.h's
// flv_transport_t vtable; the C function-pointer struct becomes a Go
// interface for init/connect/recv/fini, with Factory/Probe left as
// plain fields since Go has no constructor slot on an interface.
package transport

import (
	"wsmedia/internal/core/errctx"
)

// HandlerFunc is invoked once per record recognised by the splitter. It
// receives a borrowed view of the record (valid only for the duration
// of the call), the caller's opaque userdata, and the shared
// ErrorContext for the currently-running recv invocation. Returning
// false halts delivery for the remainder of the current payload; the
// handler MUST populate errctx before returning false.
type HandlerFunc func(rec any, userdata any, errctx *errctx.Context) bool

// Context is the per-session transport state machine: created by a
// Descriptor's Factory, driven through Init -> Connect -> Recv* ->
// Fini by the session facade in internal/session.
type Context interface {
	// Init parses rawURL, prepares the connection (including TLS policy
	// selection for wss), and returns false on failure with errctx
	// populated (INVALID_ARGUMENT, NO_MEMORY). Parsing happens inside
	// Init, not before it, mirroring the original flv_transport_websocket_init.
	Init(rawURL string, errctx *errctx.Context) bool

	// Connect performs the handshake, pumping the event loop internally
	// until the connection is open or an error occurs.
	Connect(errctx *errctx.Context) bool

	// Recv pumps one event-loop tick, delivering zero or more records
	// to handler as a side effect. Returns false if the tick reported
	// an error.
	Recv(handler HandlerFunc, userdata any, errctx *errctx.Context) bool

	// Fini releases all resources owned by the context. Idempotent.
	Fini()
}

// Descriptor is an immutable, registered transport strategy. All
// fields must be populated before Register accepts it, mirroring the
// assert() calls inside the original REGISTER_TRANSPORT macro.
type Descriptor struct {
	// Name is the short, unique transport identifier (e.g. "websocket").
	Name string
	// Description is a human-readable summary (e.g. "FLV-over-WebSocket").
	Description string
	// Factory allocates a new, zeroed Context for one session.
	Factory func() Context
	// Probe reports whether this transport can serve rawURL. Probes
	// are pure string predicates with no side effects.
	Probe func(rawURL string) bool
}

// valid reports whether every required slot of d is populated, mirroring
// the assert() calls inside REGISTER_TRANSPORT.
func (d Descriptor) valid() bool {
	return d.Name != "" && d.Description != "" && d.Factory != nil && d.Probe != nil
}
