package server

import (
	"crypto/tls"
	"fmt"
)

// DefaultTLSConfig is the baseline for NewTLSConfig: TLS 1.2 minimum
// with ECDHE-only AEAD suites, so every connection has forward secrecy.
// TLS 1.3 suites need no listing; Go selects them itself.
func DefaultTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		},
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
	}
}

// ModernTLSConfig requires TLS 1.3. Fit for internal services where
// every client is under your control; older clients cannot connect.
func ModernTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
	}
}

// IntermediateTLSConfig keeps TLS 1.2 compatibility with the same
// ECDHE suite set plus P-384, for public endpoints that still see
// older-but-not-ancient clients.
func IntermediateTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			tls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
		},
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
			tls.CurveP384,
		},
	}
}

// StrictTLSConfig is ModernTLSConfig hardened further: session tickets
// off so a stolen ticket key cannot decrypt recorded traffic, and
// renegotiation refused outright.
func StrictTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS13,
		CurvePreferences: []tls.CurveID{
			tls.X25519,
			tls.CurveP256,
		},
		SessionTicketsDisabled:      true,
		DynamicRecordSizingDisabled: false,
		Renegotiation:               tls.RenegotiateNever,
		PreferServerCipherSuites:    false,
	}
}

// TLSConfigOption customizes a TLS configuration. Options validate
// their inputs and report failures instead of applying them silently.
type TLSConfigOption func(*tls.Config) error

// WithTLSCertificate loads a certificate/key pair from disk.
func WithTLSCertificate(certFile, keyFile string) TLSConfigOption {
	return func(cfg *tls.Config) error {
		if certFile == "" || keyFile == "" {
			return ErrEmptyCertPath
		}
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFailedLoadCert, err)
		}
		cfg.Certificates = append(cfg.Certificates, cert)
		return nil
	}
}

// WithTLSClientAuth configures client certificate authentication.
func WithTLSClientAuth(clientAuthType tls.ClientAuthType) TLSConfigOption {
	return func(cfg *tls.Config) error {
		switch clientAuthType {
		case tls.NoClientCert,
			tls.RequestClientCert,
			tls.RequireAnyClientCert,
			tls.VerifyClientCertIfGiven,
			tls.RequireAndVerifyClientCert:
			cfg.ClientAuth = clientAuthType
			return nil
		default:
			return fmt.Errorf("%w: %d", ErrInvalidClientAuthType, clientAuthType)
		}
	}
}

// WithTLSMinVersion sets the minimum TLS version. Only the versions Go
// actually speaks are accepted.
func WithTLSMinVersion(version uint16) TLSConfigOption {
	return func(cfg *tls.Config) error {
		switch version {
		case tls.VersionTLS10, tls.VersionTLS11, tls.VersionTLS12, tls.VersionTLS13:
			cfg.MinVersion = version
			return nil
		default:
			return fmt.Errorf("%w: 0x%04x", ErrInvalidTLSVersion, version)
		}
	}
}

// WithTLSServerName sets the expected server name for verification.
func WithTLSServerName(serverName string) TLSConfigOption {
	return func(cfg *tls.Config) error {
		if serverName == "" {
			return ErrEmptyServerName
		}
		cfg.ServerName = serverName
		return nil
	}
}

// WithTLSInsecureSkipVerify disables certificate verification. Test
// environments only.
func WithTLSInsecureSkipVerify() TLSConfigOption {
	return func(cfg *tls.Config) error {
		cfg.InsecureSkipVerify = true
		return nil
	}
}

// NewTLSConfig layers opts over DefaultTLSConfig. The first failing
// option aborts construction.
func NewTLSConfig(opts ...TLSConfigOption) (*tls.Config, error) {
	cfg := DefaultTLSConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
