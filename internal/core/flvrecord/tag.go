// If you are AI: This file implements the FLV tag record view and its
// stepping logic, adapted from flv/tag.go (which only encoded tags for
// a publisher) into a zero-copy decoder for a subscriber. Field layout
// and the previous-tag-size trailer are grounded on the original
// websocket_traverse_frame in websocket.c and flv_tag_t in fmp4.h.
package flvrecord

import (
	"encoding/binary"
	"fmt"
	"sync"

	"wsmedia/internal/core/record"
)

// Tag is a borrowed, zero-copy view over one FLV tag on the wire. It is
// only valid for the lifetime of the buffer it was parsed from, the
// same borrowing contract the session handler callback promises.
type Tag struct {
	Type      byte
	Length    uint32 // 24-bit on the wire
	Timestamp uint32 // reassembled from the 24-bit low + 8-bit high fields
	StreamID  uint32 // 24-bit on the wire, always 0 in practice

	raw []byte // tag header + payload, excludes the trailing previous-tag-size
}

// Bytes implements record.Record.
func (t *Tag) Bytes() []byte { return t.raw }

// Release implements record.Releasable, returning t to the pool once
// the splitter is done invoking the user handler with it.
func (t *Tag) Release() { ReleaseTag(t) }

// Payload returns the tag's media/script payload, excluding the
// 11-byte tag header.
func (t *Tag) Payload() []byte { return t.raw[TagHeaderSize:] }

var _ record.Record = (*Tag)(nil)

// Kind is the stateless marker type implementing record.Stepper[*Tag]
// and record.HeaderSkipper for FLV streams. It carries no state of its
// own; every transport instance shares one Kind{} value.
type Kind struct{}

var _ record.Stepper[*Tag] = Kind{}
var _ record.HeaderSkipper = Kind{}

var tagPool = sync.Pool{New: func() any { return new(Tag) }}

// AcquireTag obtains a pooled *Tag for Parse to fill, avoiding an
// allocation per tag on the hot splitting path, the same pooling
// discipline as bus.AcquireMessage, repurposed here for parsed record
// views instead of queued pub/sub messages.
func AcquireTag() *Tag { return tagPool.Get().(*Tag) }

// ReleaseTag returns t to the pool. t must not be used afterward. The
// wsengine record splitter releases each tag once the user handler
// returns.
func ReleaseTag(t *Tag) {
	if t == nil {
		return
	}
	*t = Tag{}
	tagPool.Put(t)
}

// Parse implements record.Stepper[*Tag]. It decodes the tag header at
// buf[offset:], validates that the declared length and trailing
// previous-tag-size field both fit within end, and returns the offset
// of the next tag.
func (Kind) Parse(buf []byte, offset, end int) (*Tag, int, error) {
	if offset+TagHeaderSize > end {
		return nil, offset, fmt.Errorf("flvrecord: tag header overruns payload at offset %d", offset)
	}

	header := buf[offset : offset+TagHeaderSize]
	length := uint32(header[1])<<16 | uint32(header[2])<<8 | uint32(header[3])
	tsLow := uint32(header[4])<<16 | uint32(header[5])<<8 | uint32(header[6])
	tsHigh := uint32(header[7])
	streamID := uint32(header[8])<<16 | uint32(header[9])<<8 | uint32(header[10])

	next := offset + TagHeaderSize + int(length) + PreviousTagSizeLen
	if next > end {
		return nil, offset, fmt.Errorf("flvrecord: tag length %d overruns payload at offset %d", length, offset)
	}
	if next <= offset {
		// Unreachable given TagHeaderSize+PreviousTagSizeLen > 0, but
		// kept explicit per the "every step must validate it advances"
		// invariant rather than relying on the arithmetic alone.
		return nil, offset, fmt.Errorf("flvrecord: zero-advance step at offset %d", offset)
	}

	tag := AcquireTag()
	tag.Type = header[0]
	tag.Length = length
	tag.Timestamp = tsLow | tsHigh<<24
	tag.StreamID = streamID
	tag.raw = buf[offset : offset+TagHeaderSize+int(length)]

	return tag, next, nil
}

// PreviousTagSize decodes the 4-byte big-endian trailer that follows a
// tag (or the file header) on the wire. Exposed for callers building
// their own stream walkers; the splitter itself only uses it via the
// fixed stride baked into Parse.
func PreviousTagSize(buf []byte) uint32 {
	return binary.BigEndian.Uint32(buf)
}
