// If you are AI: This file defines the polymorphic record-stepping
// contract shared by the FLV tag and fMP4 box record models, so the
// transport engine can walk either container format through one
// generic splitter instead of duplicating the loop per format.
package record

// Record is a container-format record parsed in place over a borrowed
// byte slice. Implementations never copy payload bytes; Bytes() returns
// a subslice of the buffer that was passed to the parser, valid only
// for the lifetime of that slice, exactly like the handler contract in
// the session facade.
type Record interface {
	// Bytes returns the full, unparsed on-wire bytes of this record,
	// including its fixed header.
	Bytes() []byte
}

// Stepper recognises the boundary of the next record of its own kind
// starting at buf[offset:end]. It never reads past end and never
// returns a next offset that fails to advance past offset; both
// violations are protocol errors the caller must report as BadMessage.
//
// Parse returns a non-nil error (with a zero Record and next == offset)
// when the region [offset, end) does not hold a complete, structurally
// valid record. The error does not distinguish a truncated record from
// a corrupt one.
type Stepper[R Record] interface {
	// Parse decodes one record at buf[offset:end] and reports the
	// offset of the byte immediately following it (the next record's
	// start, or end if this was the last record in range).
	Parse(buf []byte, offset, end int) (rec R, next int, err error)
}

// Releasable is implemented by record kinds that pool their parsed
// views (flvrecord.Tag). The splitter calls Release after the user
// handler returns, regardless of whether it returned true or false.
type Releasable interface {
	Release()
}

// HeaderSkipper is implemented by record kinds whose wire format is
// preceded by a fixed-size file/stream header that must be skipped
// before the first record of a session (the FLV file header). Record
// kinds without such a header (fMP4 boxes) do not implement it.
type HeaderSkipper interface {
	// SkipHeader returns the number of bytes to skip at the start of
	// buf before record parsing begins. Called only for the very
	// first payload delivered on a session.
	SkipHeader(buf []byte) int
}
