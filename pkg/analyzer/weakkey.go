package analyzer

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/jwtaudit/core/logger"
)

// AlgHS256 is the "alg" value of HMAC-SHA-256 signed tokens.
const AlgHS256 = "HS256"

// MACFunc computes a message authentication code of message under key.
type MACFunc func(key, message []byte) ([]byte, error)

// HMACSHA256 is the default MACFunc.
func HMACSHA256(key, message []byte) ([]byte, error) {
	m := hmac.New(sha256.New, key)
	if _, err := m.Write(message); err != nil {
		return nil, err
	}
	return m.Sum(nil), nil
}

var defaultCandidates = []string{
	"secret",
	"123456",
	"password",
	"test",
	"key",
	"123",
	"your-256-bit-secret",
	"changeme",
	"admin",
	"jwt_secret",
}

// DefaultCandidates returns a copy of the built-in weak key dictionary, in trial order.
func DefaultCandidates() []string {
	return slices.Clone(defaultCandidates)
}

// Verifier tries to reproduce an HS256 signature with a fixed list of weak keys.
type Verifier struct {
	candidates []string
	mac        MACFunc
	logger     *slog.Logger
}

// NewVerifier creates a Verifier. The candidate list is copied; a nil mac uses HMACSHA256.
func NewVerifier(candidates []string, mac MACFunc, log *slog.Logger) *Verifier {
	if mac == nil {
		mac = HMACSHA256
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Verifier{
		candidates: slices.Clone(candidates),
		mac:        mac,
		logger:     log,
	}
}

// Applies reports whether tok is an HS256 token with a signature to check.
func (v *Verifier) Applies(tok *Token) bool {
	alg, _ := tok.Header.Alg()
	return alg == AlgHS256 && tok.Signature != ""
}

// Verify returns the first candidate that reproduces the signature of tok.
// Candidates are tried one at a time in order. A failing candidate counts as a
// non-match. ok is false when the token does not apply or nothing matched.
func (v *Verifier) Verify(ctx context.Context, tok *Token) (key string, ok bool) {
	if !v.Applies(tok) {
		return "", false
	}

	input := []byte(tok.SigningInput())
	for i, candidate := range v.candidates {
		match, err := v.try(candidate, input, tok.Signature)
		if err != nil {
			v.logger.DebugContext(ctx, "weak key candidate skipped",
				logger.Count("candidate", i),
				logger.Error(err),
			)
			continue
		}
		if match {
			return candidate, true
		}
	}
	return "", false
}

func (v *Verifier) try(candidate string, input []byte, signature string) (bool, error) {
	sum, err := v.mac([]byte(candidate), input)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrMAC, err)
	}
	want, err := DecodeSegment(signature)
	if err != nil {
		return false, fmt.Errorf("signature: %w", err)
	}
	return hmac.Equal(sum, want), nil
}
