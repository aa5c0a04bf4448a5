// If you are AI: This file implements the process-wide transport
// registry. Grounded on transport.c's flv_transport_class: an
// append-only, ordered list scanned linearly, earliest registered match
// wins. This replaces the original's constructor-attribute side-effect
// registration with explicit Register calls (see
// internal/transport/registerall), and the global mutable array with a
// small struct that is written once at startup and read-only afterward.
package transport

import "fmt"

// MaxTransports bounds registry capacity, mirroring MAX_TRANSPORT_COUNT
// in the original transport.h.
const MaxTransports = 16

// Registry is an ordered, append-only list of transport descriptors.
// The zero value is an empty, usable registry. A Registry is safe for
// concurrent reads once registration has finished. It performs no
// locking, since every caller registers transports once at startup
// before any session begins reading it.
type Registry struct {
	descriptors []Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make([]Descriptor, 0, MaxTransports)}
}

// Register appends a descriptor to the registry. It panics on an
// incomplete descriptor or a full registry, mirroring the assert()
// calls the original performed at process startup via
// REGISTER_TRANSPORT. A programming error here is not something a
// caller can recover from at runtime, only fix at the call site.
func (r *Registry) Register(d Descriptor) {
	if !d.valid() {
		panic(fmt.Sprintf("transport: descriptor %q is missing required fields", d.Name))
	}
	if len(r.descriptors) >= MaxTransports {
		panic("transport: registry is full")
	}
	r.descriptors = append(r.descriptors, d)
}

// Select scans the registry in insertion order and returns the first
// descriptor whose Probe accepts rawURL. It returns (Descriptor{},
// false) with no side effect if nothing matches. Callers translate
// that into PROTOCOL_NOT_SUPPORTED.
func (r *Registry) Select(rawURL string) (Descriptor, bool) {
	for _, d := range r.descriptors {
		if d.Probe(rawURL) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Len reports how many transports are registered.
func (r *Registry) Len() int {
	return len(r.descriptors)
}
