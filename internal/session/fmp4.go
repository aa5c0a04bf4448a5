// If you are AI: This file type-fixes the generic Session façade to
// fMP4 boxes, the fMP4 sibling of flv.go.
package session

import (
	"wsmedia/internal/core/errctx"
	"wsmedia/internal/core/fmp4record"
	"wsmedia/internal/transport"
)

// FMP4Session delivers fmp4record.Box records.
type FMP4Session = Session[*fmp4record.Box]

// FMP4HandlerFunc is the fMP4-flavoured handler signature.
type FMP4HandlerFunc = HandlerFunc[*fmp4record.Box]

// CreateFMP4Session selects the transport the registry matches for
// rawURL and initializes it. The selection does not check the record
// kind; a transport delivering other records makes Recv fail with
// BAD_MESSAGE.
func CreateFMP4Session(registry *transport.Registry, rawURL string, ectx *errctx.Context) (*FMP4Session, bool) {
	return Create[*fmp4record.Box](registry, rawURL, ectx)
}
