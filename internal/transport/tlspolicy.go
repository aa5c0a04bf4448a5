// If you are AI: This file defines the TLS verification policy exposed
// to callers of the wss transports, replacing the original's hardcoded
// permissive defaults (SSL enabled, expired OK, self-signed OK,
// hostname check off) with an explicit, secure-by-default configuration.
package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
)

// TLSPolicy controls certificate verification for wss:// connections.
// The zero value is not secure: with RequireValidCert and CheckHostname
// both false, ClientConfig performs no verification at all.
// DefaultTLSPolicy returns the secure configuration.
type TLSPolicy struct {
	RequireValidCert bool
	AllowSelfSigned  bool
	AllowExpired     bool
	CheckHostname    bool
}

// DefaultTLSPolicy returns the secure default: a valid, hostname-checked
// certificate chain is required.
func DefaultTLSPolicy() TLSPolicy {
	return TLSPolicy{
		RequireValidCert: true,
		AllowSelfSigned:  false,
		AllowExpired:     false,
		CheckHostname:    true,
	}
}

// InsecureTLSPolicy reproduces the original library's permissive
// defaults (hostname check disabled, self-signed and expired
// certificates accepted) for deployments that relied on that behavior.
// This is opt-in, never the default.
func InsecureTLSPolicy() TLSPolicy {
	return TLSPolicy{
		RequireValidCert: false,
		AllowSelfSigned:  true,
		AllowExpired:     true,
		CheckHostname:    false,
	}
}

// ClientConfig builds a *tls.Config implementing this policy. The two
// common cases (fully secure, fully insecure) map directly onto Go's
// standard knobs. Any other combination, relaxing just one of
// AllowSelfSigned/AllowExpired/CheckHostname while keeping the rest,
// disables Go's built-in verification and substitutes
// verifyPeerCertificate, which applies exactly the relaxations this
// policy names and nothing more.
func (p TLSPolicy) ClientConfig(serverName string) *tls.Config {
	cfg := &tls.Config{ServerName: serverName}

	if p.RequireValidCert && p.CheckHostname && !p.AllowSelfSigned && !p.AllowExpired {
		return cfg // default Go verification: full chain + hostname check
	}

	if !p.RequireValidCert && !p.CheckHostname {
		cfg.InsecureSkipVerify = true // no verification at all
		return cfg
	}

	cfg.InsecureSkipVerify = true
	cfg.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		return p.verifyPeerCertificate(rawCerts, serverName)
	}
	return cfg
}

// verifyPeerCertificate re-implements the chain and hostname checks Go's
// transport would normally run, applying only the relaxations p names:
// AllowSelfSigned trusts the leaf certificate directly instead of
// requiring a path to a trusted root, AllowExpired verifies the chain as
// of the leaf's own NotBefore instead of the current time, and
// CheckHostname gates the SAN/CN match independently of chain trust.
func (p TLSPolicy) verifyPeerCertificate(rawCerts [][]byte, serverName string) error {
	if len(rawCerts) == 0 {
		return fmt.Errorf("transport: server presented no certificate")
	}
	certs := make([]*x509.Certificate, len(rawCerts))
	for i, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return fmt.Errorf("transport: parse peer certificate %d: %w", i, err)
		}
		certs[i] = cert
	}
	leaf := certs[0]

	if p.CheckHostname {
		if err := leaf.VerifyHostname(serverName); err != nil {
			return fmt.Errorf("transport: %w", err)
		}
	}

	if p.RequireValidCert {
		opts := x509.VerifyOptions{
			Intermediates: x509.NewCertPool(),
			KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		}
		for _, c := range certs[1:] {
			opts.Intermediates.AddCert(c)
		}
		if p.AllowSelfSigned {
			opts.Roots = x509.NewCertPool()
			opts.Roots.AddCert(leaf)
		}
		if p.AllowExpired {
			opts.CurrentTime = leaf.NotBefore
		}
		if _, err := leaf.Verify(opts); err != nil {
			return fmt.Errorf("transport: certificate chain verification failed: %w", err)
		}
	}

	return nil
}

// InsecureSkipVerify reports whether this policy relaxes certificate
// chain verification: self-signed or expired certs allowed, or no valid
// cert required at all. CheckHostname is not considered.
func (p TLSPolicy) InsecureSkipVerify() bool {
	return !p.RequireValidCert || p.AllowSelfSigned || p.AllowExpired
}
