package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/response"
	"github.com/dmitrymomot/jwtaudit/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	Skip func(ctx handler.Context) bool
	// Limiter is required.
	Limiter ratelimiter.RateLimiter
	// KeyExtractor picks the bucket for a request (default: remote IP).
	KeyExtractor func(ctx handler.Context) string
	// SetHeaders adds X-RateLimit-* headers to every response.
	SetHeaders bool
}

// RateLimit rejects requests with 429 once their key runs out of tokens.
// Panics if no limiter is provided.
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}
	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = RemoteIP
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			result, err := cfg.Limiter.Allow(ctx, cfg.KeyExtractor(ctx))
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			var resp handler.Response
			if result.Allowed() {
				resp = next(ctx)
			} else {
				tooMany := response.ErrTooManyRequests
				if retry := result.RetryAfter(); retry > 0 {
					tooMany = tooMany.WithDetails(map[string]any{"retry_after": retrySeconds(retry)})
				}
				resp = response.Error(tooMany)
			}

			if cfg.SetHeaders {
				return withRateLimitHeaders(resp, result)
			}
			return resp
		}
	}
}

// RemoteIP returns the host part of the request's remote address.
func RemoteIP(ctx handler.Context) string {
	addr := ctx.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func withRateLimitHeaders(resp handler.Response, result *ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if retry := result.RetryAfter(); retry > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds(retry)))
		}
		if resp == nil {
			return nil
		}
		return resp(w, r)
	}
}

func retrySeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}
