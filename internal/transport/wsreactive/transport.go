// If you are AI: This file implements the reactive fMP4-over-WebSocket
// transport. Grounded on evowebsocket.c: the CLIENT_ESTABLISHED branch
// sends PLAY before marking the connection up, and the
// CLIENT_WRITEABLE branch sends PING. libwebsockets fires
// CLIENT_WRITEABLE whenever the socket becomes writable and the
// protocol has requested a writable callback; gorilla/websocket has no
// equivalent, so a fixed interval checked once per Recv tick stands in
// for it.
package wsreactive

import (
	"strings"
	"time"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/transport"
	"wsmedia/internal/transport/wsengine"
)

// PingInterval is the default spacing between reactive PING events.
const PingInterval = 30 * time.Second

// reactiveContext adapts wsengine.Engine[*fmp4record.Box] to
// transport.Context, with PLAY/PING hooks layered on top.
type reactiveContext struct {
	engine *wsengine.Engine[*fmp4record.Box]
}

// Init implements transport.Context.
func (c *reactiveContext) Init(rawURL string, ectx *errctx.Context) bool {
	return c.engine.Init(rawURL, ectx)
}

// Connect implements transport.Context.
func (c *reactiveContext) Connect(ectx *errctx.Context) bool { return c.engine.Connect(ectx) }

// Recv implements transport.Context.
func (c *reactiveContext) Recv(h transport.HandlerFunc, userdata any, ectx *errctx.Context) bool {
	return c.engine.Recv(h, userdata, ectx)
}

// Fini implements transport.Context.
func (c *reactiveContext) Fini() { c.engine.Fini() }

// Descriptor returns the reactive fMP4-over-WebSocket transport
// descriptor. pingInterval controls how often OnTick emits a PING;
// pass wsreactive.PingInterval for production use, or a short duration
// in tests.
func Descriptor(policy transport.TLSPolicy, pingInterval time.Duration) transport.Descriptor {
	return transport.Descriptor{
		Name:        "evowebsocket",
		Description: "fMP4 boxes delivered over a reactive (PLAY/PING) WebSocket session",
		Factory: func() transport.Context {
			var lastPing time.Time

			engine := wsengine.New[*fmp4record.Box](fmp4record.Kind{}, nil, policy, wsengine.Hooks[*fmp4record.Box]{
				OnEstablished: func(e *wsengine.Engine[*fmp4record.Box]) error {
					data, err := encodeEvent("PLAY", e.NextRequestID(), time.Now().UnixMilli())
					if err != nil {
						return err
					}
					lastPing = time.Now()
					return e.WriteText(data)
				},
				OnTick: func(e *wsengine.Engine[*fmp4record.Box]) error {
					if !e.Connected() || time.Since(lastPing) < pingInterval {
						return nil
					}
					data, err := encodeEvent("PING", e.NextRequestID(), time.Now().UnixMilli())
					if err != nil {
						return err
					}
					lastPing = time.Now()
					return e.WriteText(data)
				},
			})

			return &reactiveContext{engine: engine}
		},
		Probe: func(rawURL string) bool {
			if !strings.HasPrefix(rawURL, "wss://") {
				return false
			}
			seg := rawURL
			if idx := strings.LastIndexByte(rawURL, '/'); idx >= 0 {
				seg = rawURL[idx+1:]
			}
			return strings.HasPrefix(strings.ToLower(seg), "websocketstream")
		},
	}
}
