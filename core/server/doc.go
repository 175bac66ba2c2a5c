// Package server wraps http.Server with graceful shutdown, validated
// TLS setup, environment-driven configuration, and lifecycle hooks that
// slot into an errgroup.
//
// # Quick start
//
// The package-level Run covers the simple case:
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		w.Write([]byte("ok"))
//	})
//
//	if err := server.Run(ctx, ":8080", handler); err != nil {
//		log.Fatal(err)
//	}
//
// For control over timeouts and logging, build a Server:
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(60*time.Second),
//		server.WithLogger(log),
//	)
//	if err := srv.Start(ctx, handler); err != nil {
//		log.Fatal(err)
//	}
//
// Environment-driven setups load Config (SERVER_* variables) and pass
// it through NewFromConfig:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// # TLS
//
// NewTLSConfig builds a hardened tls.Config from options that validate
// their inputs:
//
//	tlsConfig, err := server.NewTLSConfig(
//		server.WithTLSCertificate("cert.pem", "key.pem"),
//		server.WithTLSMinVersion(tls.VersionTLS13),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	srv := server.New(":8443", server.WithTLS(tlsConfig))
//
// The presets cover the usual postures: DefaultTLSConfig (TLS 1.2+,
// forward-secret suites), IntermediateTLSConfig (older clients),
// ModernTLSConfig and StrictTLSConfig (TLS 1.3 only).
//
// # Lifecycle
//
// Start blocks until the context is cancelled or the listener fails;
// Stop drains in-flight requests within the shutdown timeout. The Run
// method ties both to an errgroup so the server shuts down with the
// rest of the application:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	g.Go(store.Run(ctx))
//
//	if err := g.Wait(); err != nil {
//		log.Error("application failed", logger.Error(err))
//	}
//
// Context cancellation is treated as a clean shutdown, not an error.
//
// # Defaults
//
// Without options: 15s read and write timeouts, 60s idle, 1MB header
// cap, 30s shutdown grace, and a discard logger. Starting an
// already-running server returns ErrServerAlreadyRunning.
package server
