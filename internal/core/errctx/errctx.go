// If you are AI: This file implements the single-shot error context carrier.
// Mirrors the error_context_t / error_save family from the original C library.

package errctx

import "fmt"

// Code identifies the stable error taxonomy shared by every public
// operation in this module. Values are chosen to echo POSIX errno
// semantics, since the original library saved errno directly.
type Code int

const (
	// None means no error has been saved yet.
	None Code = iota
	// InvalidArgument means a nil pointer, missing parameter, or
	// malformed URL component was passed to a public operation.
	InvalidArgument
	// NoMemory means an allocation, serialization, or URL-parsing
	// step failed to produce all of its outputs.
	NoMemory
	// ProtocolNotSupported means no registered transport probe
	// matched the stream URL.
	ProtocolNotSupported
	// NotConnected means the handshake never completed, the event
	// loop reported an error, or a connection-error event fired.
	NotConnected
	// BadMessage means record traversal overran its payload, AMF0
	// parsing failed, or a step failed to advance.
	BadMessage
)

// String implements fmt.Stringer for Code.
func (c Code) String() string {
	switch c {
	case None:
		return "no error"
	case InvalidArgument:
		return "invalid argument"
	case NoMemory:
		return "no memory"
	case ProtocolNotSupported:
		return "protocol not supported"
	case NotConnected:
		return "not connected"
	case BadMessage:
		return "bad message"
	default:
		return "unknown error code"
	}
}

// Context is a single-shot structured error slot. The first Save call
// after construction or Clear wins; later Save calls are no-ops until
// the context is explicitly cleared. Lifetime is per outermost caller
// invocation — callers own one Context per call chain and pass it down
// by reference, exactly like the original error_context_t.
type Context struct {
	saved  bool
	origin string
	line   int
	code   Code
}

// Save records the first failure seen on this context. origin and line
// identify the call site (pass the result of caller(0) or a literal
// "pkg/file.go" string); subsequent calls before Clear are no-ops.
func (c *Context) Save(code Code, origin string, line int) {
	if c == nil || c.saved {
		return
	}
	c.saved = true
	c.origin = origin
	c.line = line
	c.code = code
}

// Clear resets the context so it can be reused for another call.
func (c *Context) Clear() {
	if c == nil {
		return
	}
	*c = Context{}
}

// Saved reports whether an error has been recorded.
func (c *Context) Saved() bool {
	return c != nil && c.saved
}

// Code returns the recorded error code, or None if nothing was saved.
func (c *Context) Code() Code {
	if c == nil {
		return None
	}
	return c.code
}

// Error implements the error interface so a populated Context can be
// returned or wrapped through ordinary Go error handling.
func (c *Context) Error() string {
	if c == nil || !c.saved {
		return "errctx: no error"
	}
	return fmt.Sprintf("%s (%s:%d)", c.code, c.origin, c.line)
}
