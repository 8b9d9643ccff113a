package analyzer

import (
	"log/slog"
	"slices"
	"time"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCandidates replaces the weak key dictionary. The slice is copied.
func WithCandidates(candidates []string) Option {
	return func(a *Analyzer) {
		a.candidates = slices.Clone(candidates)
	}
}

// WithMAC replaces the MAC backend used by the weak key check.
func WithMAC(mac MACFunc) Option {
	return func(a *Analyzer) {
		a.mac = mac
	}
}

// WithClock sets the source of the current instant for the expiration check.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger. Token contents are never logged.
func WithLogger(log *slog.Logger) Option {
	return func(a *Analyzer) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithChecks replaces the claim check pipeline. Checks run in the given order.
func WithChecks(checks ...Check) Option {
	return func(a *Analyzer) {
		a.checks = slices.Clone(checks)
	}
}
