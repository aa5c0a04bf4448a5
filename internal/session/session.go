// If you are AI: This file implements the session façade that pairs a
// stream URL with its matching transport. Grounded on flv.h's
// flv_session_t and flv_create / flv_connect / flv_recv / flv_destroy,
// generalized over the record kind so FLVSession and FMP4Session in
// sibling files become thin type aliases instead of duplicated code.
package session

import (
	"wsmedia/internal/core/errctx"
	"wsmedia/internal/transport"
)

// HandlerFunc is invoked once per record recognised on the wire. It is
// the session-facing counterpart of transport.HandlerFunc, narrowing
// rec to the caller's concrete record type R via a type assertion
// performed once inside Recv.
type HandlerFunc[R any] func(rec R, userdata any, errctx *errctx.Context) bool

// Session is the generic per-flavour façade tying a record type to the
// transport layer. FLVSession and FMP4Session are Session[*flvrecord.Tag]
// and Session[*fmp4record.Box] respectively.
type Session[R any] struct {
	registry *transport.Registry
	ctx      transport.Context
}

// Create selects a transport for rawURL, builds its context, and
// initializes it. On any failure it returns (nil, false) with ectx
// populated — PROTOCOL_NOT_SUPPORTED if no transport probe matched,
// otherwise whatever Init reported.
func Create[R any](registry *transport.Registry, rawURL string, ectx *errctx.Context) (*Session[R], bool) {
	descriptor, ok := registry.Select(rawURL)
	if !ok {
		ectx.Save(errctx.ProtocolNotSupported, "session/session.go", 0)
		return nil, false
	}

	ctx := descriptor.Factory()
	if !ctx.Init(rawURL, ectx) {
		return nil, false
	}

	return &Session[R]{registry: registry, ctx: ctx}, true
}

// Connect performs the transport handshake.
func (s *Session[R]) Connect(ectx *errctx.Context) bool {
	return s.ctx.Connect(ectx)
}

// Recv pumps one event-loop tick, narrowing each delivered record to R
// before calling handler. A record that fails the type assertion is a
// programming error in the transport wiring (a Session[R] was paired
// with a transport producing a different record kind), reported as
// BAD_MESSAGE rather than panicking the caller's process.
func (s *Session[R]) Recv(handler HandlerFunc[R], userdata any, ectx *errctx.Context) bool {
	return s.ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool {
		typed, ok := rec.(R)
		if !ok {
			ectx.Save(errctx.BadMessage, "session/session.go", 0)
			return false
		}
		return handler(typed, userdata, ectx)
	}, userdata, ectx)
}

// Destroy releases the transport context. Idempotent.
func (s *Session[R]) Destroy() {
	if s == nil || s.ctx == nil {
		return
	}
	s.ctx.Fini()
	s.ctx = nil
}
