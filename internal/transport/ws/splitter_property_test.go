// If you are AI: This file tests that n concatenated records are
// delivered in order, exactly once each, end-to-end over a real
// WebSocket connection, using testify for the richer assertion
// messages this property test benefits from.

package ws

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/transport"
)

func TestSplitterDeliversConcatenatedRecordsInOrder(t *testing.T) {
	types := []string{"ftyp", "moov", "moof", "mdat"}
	var payload []byte
	for _, typ := range types {
		payload = append(payload, boxBytes(typ, []byte{1, 2, 3, 4})...)
	}

	srv := httptest.NewServer(websocketEchoOnceHandler(t, payload))
	defer srv.Close()

	descriptor := FMP4Descriptor(transport.DefaultTLSPolicy())
	ctx := descriptor.Factory()

	var ectx errctx.Context
	require.True(t, ctx.Init(dialURL(srv), &ectx), "init: %v", ectx.Error())
	require.True(t, ctx.Connect(&ectx), "connect: %v", ectx.Error())
	defer ctx.Fini()

	var seen []string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(seen) < len(types) {
		var recvCtx errctx.Context
		ok := ctx.Recv(func(rec any, userdata any, ectx *errctx.Context) bool {
			seen = append(seen, rec.(*fmp4record.Box).TypeString())
			return true
		}, nil, &recvCtx)
		require.True(t, ok, "recv: %v", recvCtx.Error())
	}

	require.Equal(t, types, seen, "records must be delivered exactly once, in wire order")
}
