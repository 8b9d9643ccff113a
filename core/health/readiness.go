package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/core/response"
)

// Readiness returns "READY" when every check succeeds and 503 otherwise.
// Checks run in order; the first failure is logged and stops the probe.
func Readiness[C handler.Context](log *slog.Logger, checks ...func(context.Context) error) handler.HandlerFunc[C] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx C) handler.Response {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}
		return response.String("READY")
	}
}
