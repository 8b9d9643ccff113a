// Package api exposes the token analyzer over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/health"
	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/core/response"
	"github.com/dmitrymomot/jwtaudit/middleware"
	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
	"github.com/dmitrymomot/jwtaudit/pkg/async"
	"github.com/dmitrymomot/jwtaudit/pkg/ratelimiter"
	"github.com/dmitrymomot/jwtaudit/pkg/report"
)

type ctx = *handler.BaseContext

// AnalyzeRequest is the body of POST /v1/analyze.
type AnalyzeRequest struct {
	Token string `json:"token"`
}

// Config configures the API handler.
type Config struct {
	// MaxBodyBytes limits request bodies (default: middleware.DefaultBodyLimit).
	MaxBodyBytes int64
	// Timeout bounds how long a request waits for its analysis (default: 5s).
	Timeout time.Duration
	// Limiter throttles analyze requests per client. Nil disables throttling.
	Limiter ratelimiter.RateLimiter
}

// API serves analysis requests.
type API struct {
	analyzer *analyzer.Analyzer
	logger   *slog.Logger
	cfg      Config
}

// New creates an API backed by a.
func New(a *analyzer.Analyzer, log *slog.Logger, cfg Config) *API {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = middleware.DefaultBodyLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &API{analyzer: a, logger: log, cfg: cfg}
}

// Handler returns the routes:
//
//	POST /v1/analyze    analyze {"token": "..."} and return a report.Summary
//	GET  /health/live   liveness probe
//	GET  /health/ready  runs the analyzer against a known-bad token
func (a *API) Handler() http.Handler {
	common := []handler.Middleware[ctx]{
		middleware.RequestID[ctx](),
		middleware.LoggingWithLogger[ctx](a.logger),
	}

	analyze := slices.Clone(common)
	if a.cfg.Limiter != nil {
		analyze = append(analyze, middleware.RateLimit[ctx](middleware.RateLimitConfig{
			Limiter:    a.cfg.Limiter,
			SetHeaders: true,
		}))
	}
	analyze = append(analyze, middleware.BodyLimitWithSize[ctx](a.cfg.MaxBodyBytes))

	mux := http.NewServeMux()
	mux.Handle("POST /v1/analyze", a.adapt(a.analyze, analyze...))
	mux.Handle("GET /health/live", a.adapt(health.Liveness[ctx]))
	mux.Handle("GET /health/ready", a.adapt(health.Readiness[ctx](a.logger, a.selfTest)))
	mux.Handle("/", a.adapt(notFound, common...))
	return mux
}

func (a *API) adapt(h handler.HandlerFunc[ctx], mws ...handler.Middleware[ctx]) http.Handler {
	return handler.Adapt(handler.Chain(h, mws...), handler.NewContext, response.JSONErrorHandler[ctx])
}

func (a *API) analyze(c ctx) handler.Response {
	var req AnalyzeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			return response.Error(middleware.TooLarge(a.cfg.MaxBodyBytes))
		}
		return response.Error(response.ErrBadRequest.WithMessage("request body must be a JSON object with a token field"))
	}

	res, err := a.analyzer.AnalyzeAsync(c, req.Token).AwaitWithTimeout(a.cfg.Timeout)
	if err != nil {
		if errors.Is(err, async.ErrTimeout) {
			return response.Error(response.ErrGatewayTimeout.WithMessage("analysis timed out"))
		}
		return response.Error(err)
	}
	return response.JSON(report.Summarize(res))
}

// probeToken is {"alg":"none"}.{"sub":"probe"}. with an empty signature.
const probeToken = "eyJhbGciOiJub25lIn0.eyJzdWIiOiJwcm9iZSJ9."

var errSelfTest = errors.New("analyzer self-test failed")

func (a *API) selfTest(ctx context.Context) error {
	res := a.analyzer.Analyze(ctx, probeToken)
	if res.Failed() || !res.HasFinding(analyzer.FindingAlgNone) {
		return errSelfTest
	}
	return nil
}

func notFound(ctx) handler.Response {
	return response.Error(response.ErrNotFound)
}
