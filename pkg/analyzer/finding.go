package analyzer

import (
	"fmt"
	"time"
)

// Severity ranks a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"

	// SeveritySafe is only used as a tier, never on a finding.
	SeveritySafe Severity = "SAFE"
)

// Rank orders severities; a higher rank is worse. SAFE and unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Finding identifiers.
const (
	FindingAlgNone    = "ALG_NONE"
	FindingExpired    = "EXPIRED"
	FindingNoExp      = "NO_EXP"
	FindingInvalidExp = "INVALID_EXP"
	FindingWeakSecret = "WEAK_SECRET"
)

// Finding is a single weakness detected in a token.
type Finding struct {
	ID          string   `json:"id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// TierOf returns the highest severity among findings, or SeveritySafe when there are none.
func TierOf(findings []Finding) Severity {
	tier := SeveritySafe
	for _, f := range findings {
		if f.Severity.Rank() > tier.Rank() {
			tier = f.Severity
		}
	}
	return tier
}

func algNoneFinding() Finding {
	return Finding{
		ID:          FindingAlgNone,
		Severity:    SeverityCritical,
		Title:       `Algorithm "None"`,
		Description: "Token signature is not verified (alg: none). This allows attackers to forge tokens.",
	}
}

func expiredFinding(exp time.Time) Finding {
	return Finding{
		ID:          FindingExpired,
		Severity:    SeverityMedium,
		Title:       "Token Expired",
		Description: fmt.Sprintf("Token expired on %s.", exp.UTC().Format(time.RFC3339)),
	}
}

func noExpFinding() Finding {
	return Finding{
		ID:          FindingNoExp,
		Severity:    SeverityLow,
		Title:       "No Expiration",
		Description: "Token missing expiration (exp) claim. It may be valid forever.",
	}
}

func invalidExpFinding() Finding {
	return Finding{
		ID:          FindingInvalidExp,
		Severity:    SeverityLow,
		Title:       "Invalid Expiration",
		Description: "Token exp claim is not a numeric timestamp. Verifiers may ignore it and accept the token forever.",
	}
}

func weakSecretFinding(key string) Finding {
	return Finding{
		ID:          FindingWeakSecret,
		Severity:    SeverityHigh,
		Title:       "Weak Secret Detected",
		Description: fmt.Sprintf("Token signature verified with weak secret: %q", key),
	}
}
