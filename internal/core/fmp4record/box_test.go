// If you are AI: This file tests fMP4 box parsing and stepping,
// including delivering both boxes from a concatenated payload and
// rejecting an oversized declared box length.

package fmp4record

import (
	"encoding/binary"
	"testing"
)

func buildBox(boxType string, body []byte) []byte {
	buf := make([]byte, boxHeaderLen+len(body))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(buf)))
	copy(buf[4:8], boxType)
	copy(buf[8:], body)
	return buf
}

func buildRawBoxWithSize(boxType string, size uint32, body []byte) []byte {
	buf := make([]byte, boxHeaderLen+len(body))
	binary.BigEndian.PutUint32(buf[0:4], size)
	copy(buf[4:8], boxType)
	copy(buf[8:], body)
	return buf
}

func TestParseTwoBoxes(t *testing.T) {
	ftyp := buildBox("ftyp", make([]byte, 8))
	moov := buildBox("moov", nil)
	buf := append(append([]byte{}, ftyp...), moov...)

	var types []string
	var sizes []uint64
	offset := 0
	for offset < len(buf) {
		box, next, err := Kind{}.Parse(buf, offset, len(buf))
		if err != nil {
			t.Fatalf("unexpected error at offset %d: %v", offset, err)
		}
		types = append(types, box.TypeString())
		sizes = append(sizes, box.Size)
		offset = next
	}

	if len(types) != 2 || types[0] != "ftyp" || types[1] != "moov" {
		t.Fatalf("got types %v", types)
	}
	if sizes[0] != 16 || sizes[1] != 8 {
		t.Fatalf("got sizes %v", sizes)
	}
}

func TestParseRejectsUndersizedBox(t *testing.T) {
	raw := buildRawBoxWithSize("moof", 3, nil)
	_, _, err := Kind{}.Parse(raw, 0, len(raw))
	if err == nil {
		t.Fatal("expected error for box size smaller than header")
	}
}

func TestParseLargeSize(t *testing.T) {
	body := make([]byte, 16)
	buf := make([]byte, boxHeaderLen+largeSizeExtraLen+len(body))
	binary.BigEndian.PutUint32(buf[0:4], 1) // size == 1 -> use largeSize
	copy(buf[4:8], "mdat")
	binary.BigEndian.PutUint64(buf[8:16], uint64(len(buf)))
	copy(buf[16:], body)

	box, next, err := Kind{}.Parse(buf, 0, len(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if box.HeaderLen != 16 {
		t.Fatalf("got header len %d, want 16", box.HeaderLen)
	}
	if next != len(buf) {
		t.Fatalf("got next %d, want %d", next, len(buf))
	}
	if len(box.Body()) != len(body) {
		t.Fatalf("got body len %d, want %d", len(box.Body()), len(body))
	}
}

func TestParseSizeZeroExtendsToEnd(t *testing.T) {
	buf := buildRawBoxWithSize("mdat", 0, make([]byte, 24))
	box, next, err := Kind{}.Parse(buf, 0, len(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != len(buf) {
		t.Fatalf("got next %d, want %d", next, len(buf))
	}
	if box.Size != uint64(len(buf)) {
		t.Fatalf("got size %d, want %d", box.Size, len(buf))
	}
}

func TestParseRejectsOverrunBoxSize(t *testing.T) {
	raw := buildRawBoxWithSize("ftyp", 1000, nil)
	_, _, err := Kind{}.Parse(raw, 0, len(raw))
	if err == nil {
		t.Fatal("expected error for box size overrunning payload")
	}
}

func TestParseRejectsShortHeader(t *testing.T) {
	_, _, err := Kind{}.Parse([]byte{0, 0, 0}, 0, 3)
	if err == nil {
		t.Fatal("expected error for truncated box header")
	}
}
