// If you are AI: This file tests TLSPolicy's partial-relaxation paths
// against real, in-memory self-signed and expired certificates, to
// confirm verifyPeerCertificate enforces exactly the flags it is given
// rather than collapsing every relaxation to no verification at all.
package transport

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"
)

func selfSignedCert(t *testing.T, commonName string, notBefore, notAfter time.Time) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		DNSNames:     []string{commonName},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return der
}

func TestVerifyPeerCertificateAllowSelfSignedAcceptsUntrustedChain(t *testing.T) {
	der := selfSignedCert(t, "example.test", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	policy := TLSPolicy{RequireValidCert: true, AllowSelfSigned: true, CheckHostname: true}

	if err := policy.verifyPeerCertificate([][]byte{der}, "example.test"); err != nil {
		t.Fatalf("expected self-signed cert to be accepted, got %v", err)
	}
}

func TestVerifyPeerCertificateAllowExpiredAcceptsExpiredChain(t *testing.T) {
	der := selfSignedCert(t, "example.test", time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	policy := TLSPolicy{RequireValidCert: true, AllowSelfSigned: true, AllowExpired: true, CheckHostname: true}

	if err := policy.verifyPeerCertificate([][]byte{der}, "example.test"); err != nil {
		t.Fatalf("expected expired cert to be accepted, got %v", err)
	}
}

func TestVerifyPeerCertificateAllowSelfSignedAloneStillRejectsExpired(t *testing.T) {
	der := selfSignedCert(t, "example.test", time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	policy := TLSPolicy{RequireValidCert: true, AllowSelfSigned: true, CheckHostname: true}

	if err := policy.verifyPeerCertificate([][]byte{der}, "example.test"); err == nil {
		t.Fatal("expected expired cert to be rejected when AllowExpired is not set")
	}
}

func TestVerifyPeerCertificateCheckHostnameRejectsMismatch(t *testing.T) {
	der := selfSignedCert(t, "example.test", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	policy := TLSPolicy{RequireValidCert: true, AllowSelfSigned: true, CheckHostname: true}

	if err := policy.verifyPeerCertificate([][]byte{der}, "other.test"); err == nil {
		t.Fatal("expected hostname mismatch to be rejected")
	}
}

func TestVerifyPeerCertificateHostnameSkippedWhenDisabled(t *testing.T) {
	der := selfSignedCert(t, "example.test", time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	policy := TLSPolicy{RequireValidCert: true, AllowSelfSigned: true, CheckHostname: false}

	if err := policy.verifyPeerCertificate([][]byte{der}, "other.test"); err != nil {
		t.Fatalf("expected hostname mismatch to be ignored when CheckHostname is false, got %v", err)
	}
}

func TestVerifyPeerCertificateNoCertsRejected(t *testing.T) {
	policy := TLSPolicy{RequireValidCert: true, CheckHostname: true}
	if err := policy.verifyPeerCertificate(nil, "example.test"); err == nil {
		t.Fatal("expected empty certificate list to be rejected")
	}
}
