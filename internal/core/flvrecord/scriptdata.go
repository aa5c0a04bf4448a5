// If you are AI: This file adds a convenience decoder that returns the
// full AMF0 onTextData record as a generic amf0.Object, for callers
// that want more than the wall-clock millisecond value ParseWallClock
// extracts. It is grounded on the core/protocol/amf0 decode package,
// which this client otherwise does not need (it never encodes or
// decodes RTMP command messages).
package flvrecord

import (
	"bytes"
	"fmt"

	"wsmedia/internal/core/amf0"
)

// DecodeScriptData decodes an FLV script-data tag payload (TagTypeScript)
// into its AMF0 values: the record name string and its ECMA-array body.
// Returns an error wrapping amf0's sentinel errors on malformed input.
func DecodeScriptData(payload []byte) (name string, body amf0.Object, err error) {
	r := bytes.NewReader(payload)

	name, err = amf0.DecodeString(r)
	if err != nil {
		return "", nil, fmt.Errorf("flvrecord: decode script data name: %w", err)
	}

	val, err := amf0.Decode(r)
	if err != nil {
		return "", nil, fmt.Errorf("flvrecord: decode script data body: %w", err)
	}

	obj, ok := val.(amf0.Object)
	if !ok {
		return name, nil, fmt.Errorf("flvrecord: script data body is not an object/ECMA array")
	}
	return name, obj, nil
}
