// If you are AI: This file implements the fMP4 (ISO-BMFF) box record
// view and its stepping logic. This tree otherwise only speaks
// FLV/RTMP, so there is no prior Go source for fMP4 box parsing; this
// is grounded directly on the reactive transport's
// evowebsocket_traverse_frame,
// which steps boxes by their 32-bit size field. The 64-bit largeSize
// and size==0 forms are added here since a complete ISO-BMFF box
// walker needs to support them, even though the original C reference
// only handled the common 32-bit case.
package fmp4record

import (
	"encoding/binary"
	"fmt"

	"wsmedia/internal/core/record"
)

// boxHeaderLen is the size of the ordinary 8-byte box header (size + type).
const boxHeaderLen = 8

// largeSizeExtraLen is the additional 8 bytes present when size == 1.
const largeSizeExtraLen = 8

// Box is a borrowed, zero-copy view over one fMP4 box on the wire.
type Box struct {
	Type      [4]byte
	HeaderLen int // bytes consumed by size/type/largeSize before Body
	Size      uint64
	raw       []byte
}

// Bytes implements record.Record.
func (b *Box) Bytes() []byte { return b.raw }

// TypeString returns the 4-character box type as a string, e.g. "ftyp".
func (b *Box) TypeString() string { return string(b.Type[:]) }

// Body returns the box payload, excluding its header.
func (b *Box) Body() []byte { return b.raw[b.HeaderLen:] }

var _ record.Record = (*Box)(nil)

// Kind is the stateless marker type implementing record.Stepper[*Box]
// for fMP4 streams. fMP4 boxes have no preceding file header to skip,
// so Kind intentionally does not implement record.HeaderSkipper.
type Kind struct{}

var _ record.Stepper[*Box] = Kind{}

// Parse implements record.Stepper[*Box]. It decodes the box header at
// buf[offset:], resolving the 32-bit size field to its largeSize (size
// == 1) or rest-of-payload (size == 0) forms, validates the box fits
// within end, and returns the offset of the next box.
func (Kind) Parse(buf []byte, offset, end int) (*Box, int, error) {
	if offset+boxHeaderLen > end {
		return nil, offset, fmt.Errorf("fmp4record: box header overruns payload at offset %d", offset)
	}

	size32 := binary.BigEndian.Uint32(buf[offset : offset+4])
	var typ [4]byte
	copy(typ[:], buf[offset+4:offset+8])

	headerLen := boxHeaderLen
	var size uint64

	switch size32 {
	case 0:
		// Box extends to the end of this payload.
		size = uint64(end - offset)
	case 1:
		if offset+boxHeaderLen+largeSizeExtraLen > end {
			return nil, offset, fmt.Errorf("fmp4record: largeSize box header overruns payload at offset %d", offset)
		}
		size = binary.BigEndian.Uint64(buf[offset+boxHeaderLen : offset+boxHeaderLen+largeSizeExtraLen])
		headerLen = boxHeaderLen + largeSizeExtraLen
	default:
		size = uint64(size32)
	}

	if size < uint64(headerLen) {
		// A box smaller than its own header is a protocol error. Most
		// notably a literal 32-bit size of 2..7 (0 and 1 are the
		// rest-of-payload and largeSize forms), or a largeSize below 16.
		return nil, offset, fmt.Errorf("fmp4record: box size %d smaller than header at offset %d", size, offset)
	}

	next := offset + int(size)
	if next > end {
		return nil, offset, fmt.Errorf("fmp4record: box size %d overruns payload at offset %d", size, offset)
	}
	if next <= offset {
		return nil, offset, fmt.Errorf("fmp4record: zero-advance step at offset %d", offset)
	}

	box := &Box{
		Type:      typ,
		HeaderLen: headerLen,
		Size:      size,
		raw:       buf[offset:next],
	}
	return box, next, nil
}
