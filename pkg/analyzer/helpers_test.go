package analyzer_test

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// fixedNow is the clock used by tests that depend on expiration.
var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seg(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// rawToken assembles a token from literal JSON so tests control key order and types.
func rawToken(header, payload, signature string) string {
	return seg(header) + "." + seg(payload) + "." + signature
}

func signHS256(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func unsigned(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return s
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
