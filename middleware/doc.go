// Package middleware provides HTTP middleware for the analysis API: request IDs,
// access logging, per-client rate limits and request body limits.
//
// All middleware follow the same pattern:
//   - generic functions over a handler.Context type parameter
//   - a Config struct with a Skip hook
//   - a default constructor and a WithConfig constructor
//
// # Usage
//
//	h := handler.Chain(analyze,
//		middleware.RequestID[*handler.BaseContext](),
//		middleware.LoggingWithLogger[*handler.BaseContext](log),
//		middleware.RateLimit[*handler.BaseContext](middleware.RateLimitConfig{Limiter: limiter}),
//		middleware.BodyLimitWithSize[*handler.BaseContext](16<<10),
//	)
//
// RequestID should be first. Build the logger with
// logger.WithContextExtractors(middleware.RequestIDExtractor) so the access log
// and anything logged with the request context carry request_id.
// The access log never records request or response bodies.
package middleware
