package analyzer

import (
	"errors"
	"strings"
	"time"
)

// AlgNone is the "alg" value of an unsecured token.
const AlgNone = "none"

// Check inspects a decoded token and returns its findings in discovery order.
// Checks are pure; now is the instant the analysis started.
type Check func(h Header, c Claims, now time.Time) []Finding

// DefaultChecks returns the claim checks in their reporting order.
func DefaultChecks() []Check {
	return []Check{CheckAlgNone, CheckExpiration}
}

// CheckAlgNone flags tokens that declare no signing algorithm.
func CheckAlgNone(h Header, _ Claims, _ time.Time) []Finding {
	if alg, ok := h.Alg(); ok && !strings.EqualFold(alg, AlgNone) {
		return nil
	}
	return []Finding{algNoneFinding()}
}

// CheckExpiration flags tokens that are expired, never expire, or carry an unusable exp.
func CheckExpiration(_ Header, c Claims, now time.Time) []Finding {
	exp, ok, err := c.Expiration()
	switch {
	case errors.Is(err, ErrInvalidExp):
		return []Finding{invalidExpFinding()}
	case !ok:
		return []Finding{noExpFinding()}
	case exp.Before(now):
		return []Finding{expiredFinding(exp)}
	default:
		return nil
	}
}
