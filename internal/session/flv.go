// If you are AI: This file type-fixes the generic Session façade to FLV
// tags, avoiding a near-duplicate FLV-specific session type.
package session

import (
	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/flvrecord"
	"wsmedia/internal/transport"
)

// FLVSession delivers flvrecord.Tag records.
type FLVSession = Session[*flvrecord.Tag]

// FLVHandlerFunc is the FLV-flavoured handler signature.
type FLVHandlerFunc = HandlerFunc[*flvrecord.Tag]

// CreateFLVSession selects the transport the registry matches for
// rawURL and initializes it. The selection does not check the record
// kind; a transport delivering other records makes Recv fail with
// BAD_MESSAGE.
func CreateFLVSession(registry *transport.Registry, rawURL string, ectx *errctx.Context) (*FLVSession, bool) {
	return Create[*flvrecord.Tag](registry, rawURL, ectx)
}
