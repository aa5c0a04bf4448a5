// If you are AI: This file implements general AMF0 value decoding.
// Adapted from core/protocol/amf0/decode.go, which also decoded RTMP
// command arrays (DecodeCommand) for an RTMP ingest server this client
// has no use for; that function is dropped here, see DESIGN.md. What
// remains backs flvrecord.DecodeScriptData. Low-level field reads are
// factored into readMarker/readUint16/readUint32 helpers rather than
// inlining binary.Read at each call site, following the small-reader-
// helper shape used elsewhere in the corpus for hand-rolled binary
// protocols.
package amf0

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrUnexpectedType = errors.New("amf0: unexpected type")
	ErrInvalidData    = errors.New("amf0: invalid data")
)

// Decode reads a single AMF0 value, dispatching on its leading type marker.
func Decode(r io.Reader) (Value, error) {
	marker, err := readMarker(r)
	if err != nil {
		return nil, err
	}

	switch marker {
	case TypeNumber:
		return decodeNumber(r)
	case TypeBoolean:
		return decodeBoolean(r)
	case TypeString:
		return decodeString(r)
	case TypeNull, TypeUndefined:
		return nil, nil
	case TypeObject:
		return decodeObject(r)
	case TypeECMAArray:
		return decodeECMAArray(r)
	default:
		return nil, ErrUnexpectedType
	}
}

// DecodeString reads one AMF0 string value including its type marker,
// for callers that expect a string specifically (the onTextData
// "type"/"text" member values) rather than the generic Value union
// Decode returns.
func DecodeString(r io.Reader) (string, error) {
	marker, err := readMarker(r)
	if err != nil {
		return "", err
	}
	if marker != TypeString {
		return "", ErrUnexpectedType
	}
	return decodeString(r)
}

// readMarker reads a single type-marker or end-marker byte.
func readMarker(r io.Reader) (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readUint16 reads a big-endian length or count field.
func readUint16(r io.Reader) (uint16, error) {
	var n uint16
	err := binary.Read(r, binary.BigEndian, &n)
	return n, err
}

// readUint32 reads a big-endian length or count field.
func readUint32(r io.Reader) (uint32, error) {
	var n uint32
	err := binary.Read(r, binary.BigEndian, &n)
	return n, err
}

// decodeNumber reads an AMF0 Number: an IEEE-754 double, big-endian.
func decodeNumber(r io.Reader) (float64, error) {
	var num float64
	err := binary.Read(r, binary.BigEndian, &num)
	return num, err
}

// decodeBoolean reads an AMF0 Boolean: a single non-zero/zero byte.
func decodeBoolean(r io.Reader) (bool, error) {
	b, err := readMarker(r)
	return b != 0, err
}

// decodeString reads an AMF0 String: a uint16 byte length followed by
// that many raw bytes (not null-terminated).
func decodeString(r io.Reader) (string, error) {
	length, err := readUint16(r)
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// decodeObject reads AMF0's key/value member list up to the end marker:
// a zero-length key followed by TypeObjectEnd.
func decodeObject(r io.Reader) (Object, error) {
	obj := make(Object)
	for {
		keyLen, err := readUint16(r)
		if err != nil {
			return nil, err
		}
		if keyLen == 0 {
			end, err := readMarker(r)
			if err != nil {
				return nil, err
			}
			if end != TypeObjectEnd {
				return nil, ErrInvalidData
			}
			return obj, nil
		}

		keyBuf := make([]byte, keyLen)
		if _, err := io.ReadFull(r, keyBuf); err != nil {
			return nil, err
		}
		val, err := Decode(r)
		if err != nil {
			return nil, err
		}
		obj[string(keyBuf)] = val
	}
}

// decodeECMAArray reads an AMF0 ECMA array. Its wire format is identical
// to an object's member list; the leading element count is advisory, so
// decodeObject's own end marker is what actually ends the loop.
func decodeECMAArray(r io.Reader) (Object, error) {
	if _, err := readUint32(r); err != nil {
		return nil, err
	}
	return decodeObject(r)
}
