package analyzer

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/jwtaudit/core/logger"
	"github.com/dmitrymomot/jwtaudit/pkg/async"
)

// Analyzer inspects tokens. It holds configuration only and is safe for concurrent use.
type Analyzer struct {
	checks     []Check
	candidates []string
	mac        MACFunc
	now        func() time.Time
	logger     *slog.Logger

	verifier *Verifier
}

// New creates an Analyzer with the default checks and weak key dictionary.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		checks:     DefaultChecks(),
		candidates: DefaultCandidates(),
		mac:        HMACSHA256,
		now:        time.Now,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.verifier = NewVerifier(a.candidates, a.mac, a.logger)
	return a
}

// Analyze decodes token and reports its weaknesses. It never fails: parse
// errors are carried in Result.Error. Blank input yields an empty result.
func (a *Analyzer) Analyze(ctx context.Context, token string) *Result {
	token = strings.TrimSpace(token)
	if token == "" {
		return emptyResult()
	}

	start := time.Now()
	tok, err := Parse(token)
	if err != nil {
		a.logger.DebugContext(ctx, "token rejected", logger.Error(err))
		return failedResult(err)
	}

	now := a.now()
	findings := make([]Finding, 0, len(a.checks)+1)
	for _, check := range a.checks {
		findings = append(findings, check(tok.Header, tok.Claims, now)...)
	}
	if key, ok := a.verifier.Verify(ctx, tok); ok {
		findings = append(findings, weakSecretFinding(key))
	}

	res := aggregate(tok, findings)
	a.logger.DebugContext(ctx, "token analyzed",
		logger.Algorithm(res.Meta.Algorithm),
		logger.Tier(string(res.Tier())),
		logger.Count("findings", len(res.Findings)),
		logger.Elapsed(start),
	)
	return res
}

// AnalyzeAsync runs Analyze in its own goroutine. Cancelling ctx does not stop
// the analysis; callers that issue overlapping requests decide which result to keep.
func (a *Analyzer) AnalyzeAsync(ctx context.Context, token string) *async.Future[*Result] {
	return async.Async(context.WithoutCancel(ctx), token, func(ctx context.Context, token string) (*Result, error) {
		return a.Analyze(ctx, token), nil
	})
}

// Analyze inspects token with a default Analyzer.
func Analyze(ctx context.Context, token string) *Result {
	return New().Analyze(ctx, token)
}
