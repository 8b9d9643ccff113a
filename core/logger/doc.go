// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/jwtaudit/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("jwtaudit"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("jwtaudit"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	// Preset picked from configuration
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "jwtaudit"),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel, slog.LevelInfo)),
//	)
//
// Options apply in order, so WithLevel after a preset overrides the preset's level.
//
// # Attribute Helpers
//
// Helpers keep attribute names consistent across packages:
//
//	log.Info("request processed",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Latency(time.Since(start)),
//	)
//
//	log.Debug("token analyzed",
//		logger.Algorithm(res.Meta.Algorithm),
//		logger.Tier(string(res.Tier())),
//		logger.Count("findings", len(res.Findings)),
//	)
//
// Error and RequestID return an empty slog.Attr for zero inputs, which slog drops:
//
//	log.Error("operation failed", logger.Error(err))
//
// # Context-Aware Logging
//
// Extractors copy request-scoped values onto records logged through the
// *Context methods:
//
//	log := logger.New(
//		logger.WithProduction("jwtaudit"),
//		logger.WithContextExtractors(middleware.RequestIDExtractor),
//		logger.WithContextValue("tenant", tenantKey{}),
//	)
//
//	log.DebugContext(ctx, "token analyzed") // includes request_id when ctx has one
//
// An extractor returns false to add nothing. Plain Info/Debug calls carry no
// context and get no extracted attributes.
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
//
// Nop returns a logger that discards everything; it is the default for library types.
package logger
