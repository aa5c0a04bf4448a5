// If you are AI: This file wires a per-session correlation ID into a
// plain *log.Logger, following the constructor-injected logger idiom.
// The original C library never needed
// this because every session ran in its own process address space; a
// Go library sharing a process with other sessions benefits from a
// stable identifier to group log lines.
package xlog

import (
	"log"
	"os"

	"github.com/google/uuid"
)

// Session wraps a *log.Logger prefixed with a per-session correlation
// ID, so concurrent sessions in the same process can be told apart in
// shared log output.
type Session struct {
	ID      uuid.UUID
	logger  *log.Logger
	debugOn bool
}

// NewSession allocates a fresh correlation ID and a logger writing to
// os.Stderr, prefixed with that ID, with debug-level logging disabled.
func NewSession() *Session {
	return NewSessionWithLevel("info")
}

// NewSessionWithLevel is NewSession with debug-level logging enabled
// when level is "debug".
func NewSessionWithLevel(level string) *Session {
	id := uuid.New()
	return &Session{
		ID:      id,
		logger:  log.New(os.Stderr, "["+id.String()[:8]+"] ", log.LstdFlags),
		debugOn: level == "debug",
	}
}

// Printf logs a formatted message tagged with this session's correlation ID.
func (s *Session) Printf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Println logs a message tagged with this session's correlation ID.
func (s *Session) Println(args ...any) {
	s.logger.Println(args...)
}

// Debugf logs a formatted message only when the session's log level is
// "debug", used for per-record traffic that would otherwise flood
// stderr during normal operation.
func (s *Session) Debugf(format string, args ...any) {
	if s.debugOn {
		s.logger.Printf(format, args...)
	}
}
