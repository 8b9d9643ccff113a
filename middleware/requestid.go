package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/logger"
)

// DefaultRequestIDHeader carries the request ID in both directions.
const DefaultRequestIDHeader = "X-Request-ID"

// maxRequestIDLength caps IDs accepted from clients.
const maxRequestIDLength = 128

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip bypasses the middleware when it returns true.
	Skip func(ctx handler.Context) bool
	// Generator mints new IDs. Defaults to UUID v4.
	Generator func() string
	// HeaderName defaults to DefaultRequestIDHeader.
	HeaderName string
	// UseExisting trusts an ID sent by the client if Validate accepts it.
	UseExisting bool
	// Validate checks client IDs. Defaults to ValidRequestID.
	Validate func(id string) bool
}

func (cfg RequestIDConfig) withDefaults() RequestIDConfig {
	if cfg.HeaderName == "" {
		cfg.HeaderName = DefaultRequestIDHeader
	}
	if cfg.Generator == nil {
		cfg.Generator = uuid.NewString
	}
	if cfg.Validate == nil {
		cfg.Validate = ValidRequestID
	}
	return cfg
}

// resolve picks the client's ID when allowed and well-formed, otherwise a fresh one.
func (cfg RequestIDConfig) resolve(r *http.Request) string {
	if cfg.UseExisting {
		if id := r.Header.Get(cfg.HeaderName); id != "" && cfg.Validate(id) {
			return id
		}
	}
	return cfg.Generator()
}

// RequestID tags each request with a UUID v4, stores it in the request context
// and echoes it in the X-Request-ID response header.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	cfg = cfg.withDefaults()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			id := cfg.resolve(ctx.Request())
			ctx.SetValue(requestIDKey{}, id)
			return withHeader(next(ctx), cfg.HeaderName, id)
		}
	}
}

func withHeader(resp handler.Response, name, value string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set(name, value)
		if resp == nil {
			return nil
		}
		return resp(w, r)
	}
}

// ValidRequestID accepts up to 128 characters from [A-Za-z0-9._:-],
// which keeps client IDs safe to log and echo.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

// RequestIDFromContext returns the ID stored by RequestID. It works on any
// context derived from the request, including ones handed to background work.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// GetRequestID returns the request ID stored by RequestID.
func GetRequestID(ctx handler.Context) (string, bool) {
	return RequestIDFromContext(ctx)
}

// RequestIDExtractor plugs into logger.WithContextExtractors so records logged
// with a request context carry request_id.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
