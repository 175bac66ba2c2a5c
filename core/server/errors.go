package server

import "errors"

var (
	// ErrServerAlreadyRunning guards against a second Start on a server
	// that is still serving.
	ErrServerAlreadyRunning = errors.New("server is already running")

	// TLS option validation. NewTLSConfig aborts on the first failure.
	ErrEmptyCertPath         = errors.New("certificate or key file path cannot be empty")
	ErrEmptyServerName       = errors.New("server name cannot be empty")
	ErrInvalidTLSVersion     = errors.New("invalid TLS version")
	ErrInvalidClientAuthType = errors.New("invalid client auth type")
	ErrFailedLoadCert        = errors.New("failed to load certificate")
)
