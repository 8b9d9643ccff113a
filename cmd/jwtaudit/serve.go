package main

import (
	"context"
	"flag"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/core/server"
	"github.com/dmitrymomot/jwtaudit/internal/api"
	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
	"github.com/dmitrymomot/jwtaudit/pkg/ratelimiter"
)

func runServe(ctx context.Context, c cli, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	addr := fs.String("addr", "", "listen address (overrides SERVER_ADDR)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg := c.cfg.Server
	if *addr != "" {
		cfg.Addr = *addr
	}

	log := newLogger(c.cfg, c.stderr)
	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
	if err != nil {
		log.Error("failed to create server", logger.Component("server"), logger.Error(err))
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)

	apiCfg := api.Config{
		MaxBodyBytes: c.cfg.MaxTokenBytes,
		Timeout:      c.cfg.AnalyzeTimeout,
	}
	if c.cfg.RateLimit.Enabled() {
		store := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
		limiter, err := ratelimiter.NewBucket(store, c.cfg.RateLimit)
		if err != nil {
			log.Error("invalid rate limit config", logger.Component("ratelimiter"), logger.Error(err))
			return err
		}
		apiCfg.Limiter = limiter
		eg.Go(store.Run(ctx))
	}

	a := analyzer.New(analyzer.WithLogger(log))
	h := api.New(a, log, apiCfg).Handler()

	eg.Go(srv.Run(ctx, h))

	if err := eg.Wait(); err != nil {
		log.Error("server stopped with error", logger.Component("server"), logger.Error(err))
		return err
	}
	log.Info("server stopped", logger.Component("server"))
	return nil
}
