// If you are AI: This file implements the AMF0 onTextData wall-clock
// extractor. Algorithm and bounds-checking are ported directly from
// flv_parse_wallclock in the original fmp4.c, including tolerating
// either member order ("type" then "text", or "text" then "type") and
// treating any overrun or non-digit byte as a protocol error rather
// than panicking or silently truncating.
package flvrecord

import (
	"encoding/binary"
	"fmt"
)

const (
	onTextDataMarker = "onTextData"
	typeMemberKey    = "type"
	textMemberKey    = "text"
	typeMemberValue  = "Text"
)

// ParseWallClock walks an AMF0 SCRIPT_DATA payload and returns the
// decimal millisecond value carried in the "text" member of an
// onTextData record. It returns (0, nil) if payload is not an
// onTextData record at all. That is not an error.
//
// payload is the FLV tag payload (Tag.Payload()), not the whole tag.
func ParseWallClock(payload []byte) (uint64, error) {
	pos := 0

	// Skip string marker (1 byte) + length (2 bytes).
	pos += 1 + 2
	if pos+len(onTextDataMarker) > len(payload) {
		return 0, fmt.Errorf("flvrecord: payload too short for onTextData marker")
	}
	if string(payload[pos:pos+len(onTextDataMarker)]) != onTextDataMarker {
		return 0, nil
	}
	pos += len(onTextDataMarker)

	// Skip ECMA-array type marker (1 byte) + element count (4 bytes).
	pos += 1 + 4

	// Peek at the first member key to determine member order.
	if pos+2 > len(payload) {
		return 0, fmt.Errorf("%w: onTextData truncated before first member key", errBadMessage)
	}
	keyLen := int(binary.BigEndian.Uint16(payload[pos : pos+2]))
	if pos+2+keyLen > len(payload) {
		return 0, fmt.Errorf("%w: onTextData member key overruns payload", errBadMessage)
	}
	key := string(payload[pos+2 : pos+2+keyLen])

	var val uint64
	var err error
	switch key {
	case typeMemberKey:
		pos, err = consumeTypeMember(payload, pos)
		if err != nil {
			return 0, err
		}
		val, _, err = consumeTextMember(payload, pos)
	case textMemberKey:
		val, pos, err = consumeTextMember(payload, pos)
		if err != nil {
			return 0, err
		}
		_, err = consumeTypeMember(payload, pos)
	default:
		return 0, fmt.Errorf("%w: unexpected onTextData member %q", errBadMessage, key)
	}
	if err != nil {
		return 0, err
	}

	return val, nil
}

var errBadMessage = fmt.Errorf("flvrecord: bad message")

// consumeTypeMember consumes the fixed "type": "Text" member, asserting
// only that it fits within the payload. Its value is not otherwise
// interesting to the wall-clock extractor.
func consumeTypeMember(payload []byte, pos int) (int, error) {
	pos += 2 + len(typeMemberKey) // key length + "type"
	pos += 1                      // AMF0 string type marker
	pos += 2 + len(typeMemberValue)
	if pos > len(payload) {
		return pos, fmt.Errorf("%w: onTextData type member overruns payload", errBadMessage)
	}
	return pos, nil
}

// consumeTextMember consumes the "text": "<decimal digits>" member and
// accumulates its ASCII digits into a uint64. Overflow of the
// accumulated value is the caller's responsibility.
func consumeTextMember(payload []byte, pos int) (uint64, int, error) {
	pos += 2 + len(textMemberKey) // key length + "text"
	pos += 1                      // AMF0 string type marker

	if pos+2 > len(payload) {
		return 0, pos, fmt.Errorf("%w: onTextData text member header overruns payload", errBadMessage)
	}
	strLen := int(binary.BigEndian.Uint16(payload[pos : pos+2]))
	pos += 2

	if pos+strLen > len(payload) {
		return 0, pos, fmt.Errorf("%w: onTextData text member value overruns payload", errBadMessage)
	}

	var val uint64
	for i := 0; i < strLen; i++ {
		digit := payload[pos+i]
		if digit < '0' || digit > '9' {
			return 0, pos, fmt.Errorf("%w: onTextData text member has non-digit byte 0x%02x", errBadMessage, digit)
		}
		val = 10*val + uint64(digit-'0')
	}
	pos += strLen

	return val, pos, nil
}
