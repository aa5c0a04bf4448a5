// If you are AI: This file implements the shared WebSocket event-loop
// engine used by both the passive and reactive transports, extending
// the record-model unification to the transport layer itself. It is
// grounded on websocket.c's flv_transport_websocket_* functions and
// evowebsocket.c's matching pair, which differ only in their event
// handler's behavior on CLIENT_ESTABLISHED/CLIENT_WRITEABLE, modeled
// here as the Hooks callbacks.
//
// gorilla/websocket exposes a blocking Conn rather than libwebsockets'
// embedded epoll loop, so "one recv call pumps the loop for one 10ms
// tick" is reproduced by running a single background read-pump
// goroutine per session that feeds a buffered channel, and having Recv
// drain at most one payload (or react to a connection-lifecycle event)
// from that channel within a 10ms budget.
package wsengine

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/record"
	"wsmedia/internal/core/urlcfg"
	"wsmedia/internal/transport"
)

// TickBudget is the per-Recv-call time budget, matching the original's
// lws_service(wsctx->lwsctx, 10) millisecond argument.
const TickBudget = 10 * time.Millisecond

// ControlMessageMaxLength is the heuristic threshold below which a
// payload starting with '{' is treated as an in-band JSON control frame
// rather than a container record. This is a heuristic, not a strict
// content-type negotiation: a binary record that happens to start with
// byte 0x7B ('{') and is shorter than this threshold would be
// misclassified. Preserved as-is rather than replaced with a stricter
// framing rule.
const ControlMessageMaxLength = 1024

// maxURLLength bounds the URL string accepted by Init, mirroring the
// MAX_STR_LEN bound the original applied when copying the URL.
const maxURLLength = 1024

// Hooks customises Engine behavior for the passive vs. reactive
// transport variants.
type Hooks[R record.Record] struct {
	// OnEstablished runs once after the handshake completes, before the
	// engine marks itself connected. The reactive transport sends its
	// PLAY event here; the passive transport leaves this nil.
	OnEstablished func(e *Engine[R]) error

	// OnTick runs at the start of every Recv call, before waiting on
	// the next payload. The reactive transport uses it to emit a PING
	// on a fixed interval. gorilla/websocket has no analogue to
	// libwebsockets' CLIENT_WRITEABLE callback, so a simple interval
	// check stands in for "the socket became writable".
	OnTick func(e *Engine[R]) error
}

// Engine drives one WebSocket session: connect, event-loop ticks,
// record splitting, and handler dispatch. It implements
// transport.Context when paired with a record.Stepper[R].
type Engine[R record.Record] struct {
	stepper record.Stepper[R]
	skipper record.HeaderSkipper // nil when R has no file header to skip
	policy  transport.TLSPolicy
	hooks   Hooks[R]

	url    urlcfg.StreamURL
	rawURL string

	mu            sync.Mutex
	conn          *websocket.Conn
	payloads      chan []byte
	readErrs      chan error
	closeOnce     sync.Once
	closed        chan struct{}
	requestCount  uint32
	responseCount uint32
	connected     bool
	errored       bool

	handler  transport.HandlerFunc
	userdata any
}

// New constructs an Engine for the given record kind. skipper may be
// nil if the record kind has no preceding file header.
func New[R record.Record](stepper record.Stepper[R], skipper record.HeaderSkipper, policy transport.TLSPolicy, hooks Hooks[R]) *Engine[R] {
	return &Engine[R]{
		stepper: stepper,
		skipper: skipper,
		policy:  policy,
		hooks:   hooks,
	}
}

// Init parses rawURL and stores connection parameters. It performs no
// I/O; Connect does the handshake.
func (e *Engine[R]) Init(rawURL string, ectx *errctx.Context) bool {
	if rawURL == "" || len(rawURL) > maxURLLength {
		ectx.Save(errctx.InvalidArgument, "wsengine/engine.go", 0)
		return false
	}

	u, ok := urlcfg.Parse(rawURL)
	if !ok {
		ectx.Save(errctx.NoMemory, "wsengine/engine.go", 0)
		return false
	}

	e.url = u
	e.rawURL = rawURL
	return true
}

// Connect dials the WebSocket server and pumps the handshake to
// completion, mirroring flv_transport_websocket_connect's
// lws_service loop, except here the "loop" is simply waiting on the
// synchronous Dial call plus one OnEstablished hook invocation.
func (e *Engine[R]) Connect(ectx *errctx.Context) bool {
	if e.rawURL == "" {
		ectx.Save(errctx.InvalidArgument, "wsengine/engine.go", 0)
		return false
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	if e.url.Scheme == urlcfg.SchemeWSS {
		dialer.TLSClientConfig = e.policy.ClientConfig(e.url.Host)
	} else {
		dialer.TLSClientConfig = (*tls.Config)(nil)
	}

	wireURL := fmt.Sprintf("%s://%s:%d%s", e.url.Scheme, e.url.Host, e.url.Port, e.url.Path)
	header := http.Header{"Origin": []string{e.url.Host}}

	conn, _, err := dialer.Dial(wireURL, header)
	if err != nil {
		ectx.Save(errctx.NotConnected, "wsengine/engine.go", 0)
		e.errored = true
		return false
	}

	e.conn = conn
	e.payloads = make(chan []byte, 32)
	e.readErrs = make(chan error, 1)
	e.closed = make(chan struct{})
	go e.readPump()

	if e.hooks.OnEstablished != nil {
		if err := e.hooks.OnEstablished(e); err != nil {
			ectx.Save(errctx.NotConnected, "wsengine/engine.go", 0)
			e.errored = true
			return false
		}
	}

	e.connected = true
	return true
}

// readPump is the single background goroutine reading off the
// connection; it exists because gorilla/websocket's ReadMessage blocks,
// unlike libwebsockets' callback-driven rx path.
func (e *Engine[R]) readPump() {
	for {
		_, data, err := e.conn.ReadMessage()
		if err != nil {
			select {
			case e.readErrs <- err:
			default:
			}
			return
		}
		select {
		case e.payloads <- data:
		case <-e.closed:
			return
		}
	}
}

// Fini releases the connection and stops the read-pump goroutine. Safe
// to call more than once and safe to call before Connect.
func (e *Engine[R]) Fini() {
	e.closeOnce.Do(func() {
		if e.closed != nil {
			close(e.closed)
		}
		if e.conn != nil {
			e.conn.Close()
		}
	})
}

// WriteText sends a UTF-8 text frame, used by the reactive transport to
// emit control events.
func (e *Engine[R]) WriteText(data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.conn == nil {
		return fmt.Errorf("wsengine: not connected")
	}
	return e.conn.WriteMessage(websocket.TextMessage, data)
}

// NextRequestID increments and returns the request counter, starting
// from 1 for the first call (the session's PLAY event).
func (e *Engine[R]) NextRequestID() uint32 {
	e.requestCount++
	return e.requestCount
}

// RequestCount returns the number of control events sent so far.
func (e *Engine[R]) RequestCount() uint32 { return e.requestCount }

// ResponseCount returns the number of WebSocket payloads processed so far.
func (e *Engine[R]) ResponseCount() uint32 { return e.responseCount }

// Connected reports whether the handshake has completed successfully.
func (e *Engine[R]) Connected() bool { return e.connected }
