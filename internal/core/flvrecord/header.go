// If you are AI: This file parses the FLV file header that precedes the
// first tag of a stream. Adapted from flv/header.go, which only wrote
// headers; this client only ever reads them off the wire.
package flvrecord

import "fmt"

// Header is the 9-byte FLV file header.
type Header struct {
	HasAudio   bool
	HasVideo   bool
	HeaderSize uint32
}

// ParseHeader decodes the FLV file header from the start of buf. buf
// must be at least HeaderSize bytes; callers skip the header rather
// than parse it on the splitter hot path (see SkipHeader), but this is
// exposed for callers that want to validate the signature explicitly.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("flvrecord: short FLV header (%d bytes)", len(buf))
	}
	if string(buf[0:3]) != FLVSignature {
		return Header{}, fmt.Errorf("flvrecord: bad FLV signature %q", buf[0:3])
	}

	flags := buf[4]
	headerSize := uint32(buf[5])<<24 | uint32(buf[6])<<16 | uint32(buf[7])<<8 | uint32(buf[8])

	return Header{
		HasAudio:   flags&0x04 != 0,
		HasVideo:   flags&0x01 != 0,
		HeaderSize: headerSize,
	}, nil
}

// SkipHeader implements record.HeaderSkipper. It skips the fixed file
// header plus the initial four-byte "previous tag size 0" field that
// always follows it, regardless of HeaderSize reported in the wire
// header (mirroring the original's sizeof(flv_header_t) +
// sizeof(uint32_t) constant skip).
func (Kind) SkipHeader(buf []byte) int {
	return HeaderSize + PreviousTagSizeLen
}
