// Package analyzer inspects compact JSON Web Tokens and flags common security
// weaknesses without access to the issuer's keys.
//
// An analysis decodes the header and payload segments, runs a fixed pipeline of
// claim checks, and then tries to reproduce HS256 signatures with a small
// dictionary of well-known weak secrets.
//
// # Usage
//
//	a := analyzer.New()
//	res := a.Analyze(ctx, token)
//	if res.Failed() {
//		log.Printf("not a token: %s", *res.Error)
//		return
//	}
//	for _, f := range res.Findings {
//		log.Printf("%s %s: %s", f.Severity, f.ID, f.Description)
//	}
//	log.Printf("tier: %s", res.Tier())
//
// # Findings
//
// Findings are reported in this order:
//   - ALG_NONE (CRITICAL): alg is missing, empty or "none" in any case
//   - EXPIRED (MEDIUM): exp is strictly before the analysis instant
//   - NO_EXP (LOW): exp is missing, so the token never expires
//   - INVALID_EXP (LOW): exp is present but not a numeric timestamp
//   - WEAK_SECRET (HIGH): an HS256 signature was reproduced with a dictionary key
//
// # Checks
//
// Each claim check is a pure function of the header, the claims and the current
// instant. WithChecks replaces the pipeline:
//
//	a := analyzer.New(analyzer.WithChecks(
//		analyzer.CheckAlgNone,
//		analyzer.CheckExpiration,
//		requireIssuer,
//	))
//
// # Weak Secrets
//
// The dictionary is intentionally small and fixed. Candidates are tried one at a
// time and the first match stops the search; a miss is inconclusive, not an error.
// Tests can inject a controlled dictionary with WithCandidates and a MAC backend
// with WithMAC.
//
// # Errors
//
// Analyze never returns an error. Malformed input produces a Result with
// IsValid false and Error set. Parse and DecodeSegment return errors that match
// ErrFormat, ErrPartCount, ErrMalformedJSON or ErrDecode with errors.Is.
//
// Results hold decoded claims, which may be sensitive. Nothing is cached between calls.
package analyzer
