// If you are AI: This file implements the passive FLV/fMP4-over-WebSocket
// transports. Grounded on websocket.c's flv_transport_websocket_t
// vtable (factory/init/connect/recv/fini) plus the
// CLIENT_ESTABLISHED/CLIENT_RECEIVE/CLOSED branches of
// websocket_event_handler; the record splitter itself lives in
// wsengine.Engine since it is identical between the FLV and fMP4 cases
// once parameterised by record.Stepper.
package ws

import (
	"strings"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/flvrecord"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/transport"
	"wsmedia/internal/transport/wsengine"
)

// flvContext adapts wsengine.Engine[*flvrecord.Tag] to transport.Context.
type flvContext struct {
	engine *wsengine.Engine[*flvrecord.Tag]
}

// Init implements transport.Context.
func (c *flvContext) Init(rawURL string, ectx *errctx.Context) bool { return c.engine.Init(rawURL, ectx) }

// Connect implements transport.Context.
func (c *flvContext) Connect(ectx *errctx.Context) bool { return c.engine.Connect(ectx) }

// Recv implements transport.Context.
func (c *flvContext) Recv(h transport.HandlerFunc, userdata any, ectx *errctx.Context) bool {
	return c.engine.Recv(h, userdata, ectx)
}

// Fini implements transport.Context.
func (c *flvContext) Fini() { c.engine.Fini() }

// fmp4Context adapts wsengine.Engine[*fmp4record.Box] to transport.Context.
type fmp4Context struct {
	engine *wsengine.Engine[*fmp4record.Box]
}

// Init implements transport.Context.
func (c *fmp4Context) Init(rawURL string, ectx *errctx.Context) bool { return c.engine.Init(rawURL, ectx) }

// Connect implements transport.Context.
func (c *fmp4Context) Connect(ectx *errctx.Context) bool { return c.engine.Connect(ectx) }

// Recv implements transport.Context.
func (c *fmp4Context) Recv(h transport.HandlerFunc, userdata any, ectx *errctx.Context) bool {
	return c.engine.Recv(h, userdata, ectx)
}

// Fini implements transport.Context.
func (c *fmp4Context) Fini() { c.engine.Fini() }

// FLVDescriptor returns the passive FLV-over-WebSocket transport
// descriptor, probing for a "ws://" or "wss://" URL whose last path
// segment ends in ".flv" (case-insensitive).
func FLVDescriptor(policy transport.TLSPolicy) transport.Descriptor {
	return transport.Descriptor{
		Name:        "websocket-flv",
		Description: "FLV tags delivered over a plain WebSocket connection",
		Factory: func() transport.Context {
			return &flvContext{engine: wsengine.New[*flvrecord.Tag](flvrecord.Kind{}, flvrecord.Kind{}, policy, wsengine.Hooks[*flvrecord.Tag]{})}
		},
		Probe: func(rawURL string) bool { return hasWSScheme(rawURL) && lastSegmentHasSuffix(rawURL, ".flv") },
	}
}

// FMP4Descriptor returns the passive fMP4-over-WebSocket transport
// descriptor, probing for a "ws://" or "wss://" URL whose last path
// segment ends in ".mp4" (case-insensitive).
func FMP4Descriptor(policy transport.TLSPolicy) transport.Descriptor {
	return transport.Descriptor{
		Name:        "websocket-fmp4",
		Description: "fMP4 boxes delivered over a plain WebSocket connection",
		Factory: func() transport.Context {
			return &fmp4Context{engine: wsengine.New[*fmp4record.Box](fmp4record.Kind{}, nil, policy, wsengine.Hooks[*fmp4record.Box]{})}
		},
		Probe: func(rawURL string) bool { return hasWSScheme(rawURL) && lastSegmentHasSuffix(rawURL, ".mp4") },
	}
}

// hasWSScheme reports whether rawURL starts with "ws://" or "wss://".
func hasWSScheme(rawURL string) bool {
	return strings.HasPrefix(rawURL, "ws://") || strings.HasPrefix(rawURL, "wss://")
}

// lastSegmentHasSuffix reports whether the last '/'-delimited segment of
// rawURL ends in suffix, case-insensitively.
func lastSegmentHasSuffix(rawURL, suffix string) bool {
	seg := rawURL
	if idx := strings.LastIndexByte(rawURL, '/'); idx >= 0 {
		seg = rawURL[idx+1:]
	}
	return strings.HasSuffix(strings.ToLower(seg), suffix)
}
