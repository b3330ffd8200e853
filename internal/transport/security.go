package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"

	"github.com/dtroode/healthyrecipe-client/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSTransport)(nil)
	_ model.SecurityLayer = (*PlainTransport)(nil)
)

// TLSTransport represents a TLS-enabled HTTP transport.
// It trusts the system roots plus an optional extra CA bundle.
type TLSTransport struct {
	caFileName         string
	insecureSkipVerify bool
}

// NewTLSTransport creates a new TLSTransport instance.
//
// Parameters:
//   - caFileName: Path to a PEM CA bundle, empty for system roots only
//   - insecureSkipVerify: Disables server certificate verification
//
// Returns a pointer to the newly created TLSTransport instance.
func NewTLSTransport(caFileName string, insecureSkipVerify bool) *TLSTransport {
	return &TLSTransport{
		caFileName:         caFileName,
		insecureSkipVerify: insecureSkipVerify,
	}
}

// RoundTripper builds an HTTP transport with the TLS settings applied.
//
// Returns the transport or an error if the CA bundle cannot be loaded.
func (t *TLSTransport) RoundTripper() (http.RoundTripper, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: t.insecureSkipVerify, //nolint:gosec // opt-in for local development
	}

	if t.caFileName != "" {
		pem, err := os.ReadFile(t.caFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}

		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("failed to load CA file %s: no certificates found", t.caFileName)
		}
		tlsConfig.RootCAs = pool
	}

	base := http.DefaultTransport.(*http.Transport).Clone()
	base.TLSClientConfig = tlsConfig
	return base, nil
}

// PlainTransport represents the default HTTP transport.
type PlainTransport struct{}

// NewPlainTransport creates a new PlainTransport instance.
func NewPlainTransport() *PlainTransport {
	return &PlainTransport{}
}

// RoundTripper returns a clone of the default HTTP transport.
func (t *PlainTransport) RoundTripper() (http.RoundTripper, error) {
	return http.DefaultTransport.(*http.Transport).Clone(), nil
}

// New selects the security layer: TLS when a CA file
// or insecure mode is configured, plain otherwise. HTTPS endpoints work with
// both since the plain transport uses system roots.
func New(caFileName string, insecureSkipVerify bool) model.SecurityLayer {
	if caFileName != "" || insecureSkipVerify {
		return NewTLSTransport(caFileName, insecureSkipVerify)
	}
	return NewPlainTransport()
}
