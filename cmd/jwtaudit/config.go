package main

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/core/server"
	"github.com/dmitrymomot/jwtaudit/middleware"
	"github.com/dmitrymomot/jwtaudit/pkg/ratelimiter"
)

// Config is loaded from the environment and an optional .env file.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"jwtaudit"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// LogLevel and LogFormat override the APP_ENV preset when set.
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	AnalyzeTimeout time.Duration `env:"ANALYZE_TIMEOUT" envDefault:"5s"`
	MaxTokenBytes  int64         `env:"MAX_TOKEN_BYTES" envDefault:"65536"`

	Server    server.Config
	RateLimit ratelimiter.Config
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithOutput(w),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)))
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	return logger.New(opts...)
}
