package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/response"
)

// DefaultBodyLimit is the body size limit used when none is configured.
const DefaultBodyLimit = 64 * 1024

// BodyLimitConfig configures the request body size limit middleware.
type BodyLimitConfig struct {
	Skip func(ctx handler.Context) bool

	// MaxSize is the largest accepted body in bytes (default: 64KB)
	MaxSize int64
}

// BodyLimit limits request bodies to DefaultBodyLimit bytes.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize limits request bodies to maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose declared Content-Length exceeds
// the limit with 413, and caps the body reader so undeclared bodies fail on read.
// Handlers detect the latter with IsBodyTooLarge.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			if req.ContentLength > cfg.MaxSize {
				return response.Error(TooLarge(cfg.MaxSize))
			}
			if req.Body != nil {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, cfg.MaxSize)
			}
			return next(ctx)
		}
	}
}

// TooLarge returns the 413 error reported for bodies over limit bytes.
func TooLarge(limit int64) response.HTTPError {
	return response.ErrRequestEntityTooLarge.
		WithMessage(fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", limit)).
		WithDetails(map[string]any{"limit": limit})
}

// IsBodyTooLarge reports whether err came from reading past the body limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
