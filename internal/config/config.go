// If you are AI: This file defines the configuration structure for
// wsmedia-dump. It uses strict YAML decoding and explicit defaults,
// adapted from the original server Config to the client library's
// concerns: TLS policy and session/reconnect defaults instead of
// listen ports and relay tasks.

package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the complete wsmedia-dump configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	TLS      TLSConfig     `yaml:"tls"`
	Session  SessionConfig `yaml:"session"`
	LogLevel string        `yaml:"log_level,omitempty"` // "debug", "info", "warn", "error"
}

// TLSConfig mirrors transport.TLSPolicy in YAML-friendly form.
type TLSConfig struct {
	RequireValidCert bool `yaml:"require_valid_cert"`
	AllowSelfSigned  bool `yaml:"allow_self_signed,omitempty"`
	AllowExpired     bool `yaml:"allow_expired,omitempty"`
	CheckHostname    bool `yaml:"check_hostname"`
}

// SessionConfig defines reconnect and tick behavior for the demo CLI.
type SessionConfig struct {
	ReconnectAttempts int `yaml:"reconnect_attempts"` // 0 means no retry; Load replaces 0 with 3
	ReconnectDelayMS  int `yaml:"reconnect_delay_ms"`
	MaxTicksPerRecv   int `yaml:"max_ticks_per_recv,omitempty"` // 0 means unbounded
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields. TLS
// defaults to secure, matching transport.DefaultTLSPolicy rather than
// the original library's permissive wss defaults.
func (c *Config) setDefaults() {
	if !c.TLS.RequireValidCert && !c.TLS.AllowSelfSigned && !c.TLS.AllowExpired && !c.TLS.CheckHostname {
		c.TLS = TLSConfig{RequireValidCert: true, CheckHostname: true}
	}
	if c.Session.ReconnectAttempts == 0 {
		c.Session.ReconnectAttempts = 3
	}
	if c.Session.ReconnectDelayMS == 0 {
		c.Session.ReconnectDelayMS = 1000
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
