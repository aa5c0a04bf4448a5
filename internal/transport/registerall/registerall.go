// If you are AI: This file is the explicit registration entrypoint
// replacing the original's constructor-attribute side effects (the
// REGISTER_TRANSPORT macro expanding to a __attribute__((constructor))
// function per transport, run before main by the C runtime). Go has no
// such hook, so callers call Register once at startup instead.
package registerall

import (
	"wsmedia/internal/transport"
	"wsmedia/internal/transport/ws"
	"wsmedia/internal/transport/wsreactive"
)

// Register populates r with every known transport, in priority order:
// the reactive fMP4 transport is registered before the plain fMP4
// transport, so a URL matching both probes (e.g.
// "wss://x/websocketstream.mp4") selects the reactive one.
func Register(r *transport.Registry, policy transport.TLSPolicy) {
	r.Register(wsreactive.Descriptor(policy, wsreactive.PingInterval))
	r.Register(ws.FLVDescriptor(policy))
	r.Register(ws.FMP4Descriptor(policy))
}
