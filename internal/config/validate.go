// If you are AI: This file validates configuration values and returns
// descriptive errors, and converts TLSConfig into the transport
// package's TLSPolicy.

package config

import (
	"fmt"

	"wsmedia/internal/transport"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("session config: %w", err)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug/info/warn/error, got %q", c.LogLevel)
	}
	return nil
}

// Validate checks session configuration values.
func (s *SessionConfig) Validate() error {
	if s.ReconnectAttempts < 0 {
		return fmt.Errorf("reconnect_attempts must be >= 0, got %d", s.ReconnectAttempts)
	}
	if s.ReconnectDelayMS < 0 {
		return fmt.Errorf("reconnect_delay_ms must be >= 0, got %d", s.ReconnectDelayMS)
	}
	if s.MaxTicksPerRecv < 0 {
		return fmt.Errorf("max_ticks_per_recv must be >= 0, got %d", s.MaxTicksPerRecv)
	}
	return nil
}

// TLSPolicy converts the YAML-friendly TLSConfig into a transport.TLSPolicy.
func (c *Config) TLSPolicy() transport.TLSPolicy {
	return transport.TLSPolicy{
		RequireValidCert: c.TLS.RequireValidCert,
		AllowSelfSigned:  c.TLS.AllowSelfSigned,
		AllowExpired:     c.TLS.AllowExpired,
		CheckHostname:    c.TLS.CheckHostname,
	}
}
