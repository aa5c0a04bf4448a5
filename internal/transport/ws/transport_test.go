// If you are AI: This file exercises the passive transports end-to-end
// against a real gorilla/websocket server: single-tag FLV delivery,
// two-box fMP4 delivery, ignoring an in-band JSON control frame, and
// reporting a bad-message error on a box length smaller than its header.

package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/flvrecord"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/transport"
)

var upgrader = websocket.Upgrader{}

// websocketEchoOnceHandler upgrades the connection and writes payload
// as a single binary frame, then blocks until the client closes.
func websocketEchoOnceHandler(t *testing.T, payload []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
			t.Logf("write failed: %v", err)
			return
		}
		// Keep reading to notice client-initiated close without leaking
		// the goroutine for the duration of the test.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func dialURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
}

func TestFLVSplitterDeliversOneTag(t *testing.T) {
	tagPayload := []byte("HELLO")
	var buf []byte
	buf = append(buf, flvrecord.FLVSignature[0], flvrecord.FLVSignature[1], flvrecord.FLVSignature[2], 1, 0x05, 0, 0, 0, 9)
	buf = append(buf, 0, 0, 0, 0) // previous tag size 0
	tagHeader := []byte{18, 0, 0, 5, 0, 0, 0, 0, 0, 0, 0}
	buf = append(buf, tagHeader...)
	buf = append(buf, tagPayload...)
	buf = append(buf, 0, 0, 0, 16) // previous tag size

	srv := httptest.NewServer(websocketEchoOnceHandler(t, buf))
	defer srv.Close()

	descriptor := FLVDescriptor(transport.DefaultTLSPolicy())
	ctx := descriptor.Factory()

	var ectx errctx.Context
	if !ctx.Init(dialURL(srv), &ectx) {
		t.Fatalf("init failed: %v", ectx.Error())
	}
	if !ctx.Connect(&ectx) {
		t.Fatalf("connect failed: %v", ectx.Error())
	}
	defer ctx.Fini()

	var calls int
	var lastTag *flvrecord.Tag
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && calls == 0 {
		var recvCtx errctx.Context
		ok := ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool {
			calls++
			lastTag = rec.(*flvrecord.Tag)
			return true
		}, nil, &recvCtx)
		if !ok {
			t.Fatalf("recv failed: %v", recvCtx.Error())
		}
	}

	if calls != 1 {
		t.Fatalf("expected exactly one handler call, got %d", calls)
	}
	if lastTag.Type != 18 || lastTag.Length != 5 || string(lastTag.Payload()) != "HELLO" {
		t.Fatalf("unexpected tag: %+v payload=%q", lastTag, lastTag.Payload())
	}
}

func TestFMP4SplitterDeliversBothBoxes(t *testing.T) {
	var buf []byte
	buf = append(buf, boxBytes("ftyp", make([]byte, 8))...)
	buf = append(buf, boxBytes("moov", nil)...)

	srv := httptest.NewServer(websocketEchoOnceHandler(t, buf))
	defer srv.Close()

	descriptor := FMP4Descriptor(transport.DefaultTLSPolicy())
	ctx := descriptor.Factory()

	var ectx errctx.Context
	if !ctx.Init(dialURL(srv), &ectx) {
		t.Fatalf("init failed: %v", ectx.Error())
	}
	if !ctx.Connect(&ectx) {
		t.Fatalf("connect failed: %v", ectx.Error())
	}
	defer ctx.Fini()

	var types []string
	var sizes []uint64
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(types) < 2 {
		var recvCtx errctx.Context
		ok := ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool {
			box := rec.(*fmp4record.Box)
			types = append(types, box.TypeString())
			sizes = append(sizes, box.Size)
			return true
		}, nil, &recvCtx)
		if !ok {
			t.Fatalf("recv failed: %v", recvCtx.Error())
		}
	}

	if len(types) != 2 || types[0] != "ftyp" || types[1] != "moov" {
		t.Fatalf("unexpected types: %v", types)
	}
	if sizes[0] != 16 || sizes[1] != 8 {
		t.Fatalf("unexpected sizes: %v", sizes)
	}
}

func TestJSONControlFrameIgnored(t *testing.T) {
	payload := []byte(`{"eventType":"PONG","requestId":1,"timeStamp":0}`)

	srv := httptest.NewServer(websocketEchoOnceHandler(t, payload))
	defer srv.Close()

	descriptor := FMP4Descriptor(transport.DefaultTLSPolicy())
	ctx := descriptor.Factory()

	var ectx errctx.Context
	if !ctx.Init(dialURL(srv), &ectx) {
		t.Fatalf("init failed: %v", ectx.Error())
	}
	if !ctx.Connect(&ectx) {
		t.Fatalf("connect failed: %v", ectx.Error())
	}
	defer ctx.Fini()

	calls := 0
	for i := 0; i < 5; i++ {
		var recvCtx errctx.Context
		ok := ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool {
			calls++
			return true
		}, nil, &recvCtx)
		if !ok {
			t.Fatalf("recv failed: %v", recvCtx.Error())
		}
	}

	if calls != 0 {
		t.Fatalf("expected zero handler calls for a JSON control frame, got %d", calls)
	}
}

func TestUndersizedBoxLengthReportsError(t *testing.T) {
	// box("moof", size=3, empty body): size smaller than the 8-byte header.
	buf := []byte{0, 0, 0, 3, 'm', 'o', 'o', 'f'}

	srv := httptest.NewServer(websocketEchoOnceHandler(t, buf))
	defer srv.Close()

	descriptor := FMP4Descriptor(transport.DefaultTLSPolicy())
	ctx := descriptor.Factory()

	var ectx errctx.Context
	if !ctx.Init(dialURL(srv), &ectx) {
		t.Fatalf("init failed: %v", ectx.Error())
	}
	if !ctx.Connect(&ectx) {
		t.Fatalf("connect failed: %v", ectx.Error())
	}
	defer ctx.Fini()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var recvCtx errctx.Context
		ok := ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool { return true }, nil, &recvCtx)
		if !ok {
			if recvCtx.Code() != errctx.BadMessage {
				t.Fatalf("expected BAD_MESSAGE, got %v", recvCtx.Code())
			}
			return
		}
	}
	t.Fatal("expected recv to eventually fail with BAD_MESSAGE")
}

func boxBytes(typ string, body []byte) []byte {
	size := 8 + len(body)
	buf := []byte{byte(size >> 24), byte(size >> 16), byte(size >> 8), byte(size)}
	buf = append(buf, typ...)
	buf = append(buf, body...)
	return buf
}
