// Package server wraps the standard http.Server with graceful shutdown,
// configurable timeouts and structured logging.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(10*time.Second),
//		server.WithLogger(log),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	if err := srv.Run(ctx, handler)(); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// Run returns a func() error so it can be handed to an errgroup:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// # Configuration
//
// Config is loaded from the environment (SERVER_ADDR, SERVER_READ_TIMEOUT, ...)
// with core/config and turned into a Server with NewFromConfig. Zero values keep
// the defaults from DefaultConfig.
//
// # Listening
//
// Start binds the address before serving, so "address in use" errors are returned
// directly. Ready is closed once the listener exists and Addr reports the bound
// address, which makes ":0" usable in tests.
package server
