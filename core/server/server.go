package server

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Server is an http.Server with lifecycle management attached: context
// driven startup, graceful shutdown with a deadline, and an errgroup
// adapter. Safe for concurrent use.
type Server struct {
	mu              sync.RWMutex
	addr            string
	httpServer      *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	maxHeaderBytes  int
	tlsConfig       *tls.Config
	serving         bool
}

// New builds a Server listening on addr once started. Timeouts and header
// limits start from the package defaults; the logger discards output until
// WithLogger replaces it.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:            addr,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: DefaultShutdownTimeout,
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// newHTTPServer snapshots the current settings into an http.Server.
// Callers must hold s.mu.
func (s *Server) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:           s.addr,
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
}

// listen serves on hs in a goroutine and reports a listener failure on the
// returned channel. http.ErrServerClosed is swallowed so a graceful Stop
// never surfaces as an error.
func (s *Server) listen(ctx context.Context, hs *http.Server, useTLS bool) <-chan error {
	failed := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", "addr", s.addr)

		var err error
		if useTLS {
			err = hs.ListenAndServeTLS("", "")
		} else {
			err = hs.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	}()
	return failed
}

// Start serves until the context is canceled or the listener fails,
// returning ctx.Err() in the first case. Cancellation alone does not
// drain connections; pair with Stop, or use Run which wires both.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.serving {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}
	s.serving = true
	s.httpServer = s.newHTTPServer(handler)

	// Snapshot under the lock; the serve goroutine must not read fields
	// that options may still be writing.
	hs := s.httpServer
	useTLS := s.tlsConfig != nil
	s.mu.Unlock()

	select {
	case err := <-s.listen(ctx, hs, useTLS):
		s.mu.Lock()
		s.serving = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop drains in-flight requests within the configured shutdown timeout.
// A server that is not running returns nil immediately.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.serving || s.httpServer == nil {
		return nil
	}

	s.logger.Info("shutting down server gracefully", "timeout", s.shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.serving = false

	if err != nil {
		s.logger.Error("server shutdown error", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Run adapts the server to errgroup.Go: the returned function starts the
// server, and on context cancellation shuts it down gracefully and
// reports nil so the group treats cancellation as a clean exit.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		done := make(chan error, 1)
		go func() {
			done <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.logger.Error("failed to stop server during context cancellation", "error", err)
			}
			<-done
			return nil
		case err := <-done:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Run starts a default-configured server on addr and blocks until ctx
// ends or serving fails.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	return New(addr).Start(ctx, handler)
}
