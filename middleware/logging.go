package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/logger"
)

// LoggingConfig configures the access log middleware.
// Request and response bodies are never logged: they carry tokens.
type LoggingConfig struct {
	Skip func(ctx handler.Context) bool

	// Logger receives the request context; build it with
	// logger.WithContextExtractors(RequestIDExtractor) to get request_id.
	Logger *slog.Logger

	// LogLevel is used for successful requests; 4xx log at warn and 5xx at error.
	LogLevel slog.Level

	// SlowRequestThreshold marks slower requests with slow=true.
	SlowRequestThreshold time.Duration

	Component string
}

// Logging logs one line per request with the default logger.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger logs one line per request with log.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates an access log middleware with custom configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

				var err error
				if response != nil {
					err = response(rec, r)
				}

				status := rec.status
				if err != nil && !rec.wrote {
					// The error handler writes the final status after us.
					status = statusFromError(err)
				}

				latency := time.Since(start)
				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(status),
					logger.Latency(latency),
				}
				if latency > cfg.SlowRequestThreshold {
					attrs = append(attrs, slog.Bool("slow", true))
				}

				level := cfg.LogLevel
				switch {
				case status >= http.StatusInternalServerError:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= http.StatusBadRequest:
					level = slog.LevelWarn
				}

				cfg.Logger.LogAttrs(ctx, level, "request completed", attrs...)
				return err
			}
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wrote = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
