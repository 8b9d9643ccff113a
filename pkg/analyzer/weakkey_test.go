package analyzer_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
)

func parse(t *testing.T, token string) *analyzer.Token {
	t.Helper()
	tok, err := analyzer.Parse(token)
	require.NoError(t, err)
	return tok
}

func TestDefaultCandidates(t *testing.T) {
	t.Parallel()

	got := analyzer.DefaultCandidates()
	assert.Equal(t, []string{"secret", "123456", "password", "test", "key", "123"}, got[:6])

	got[0] = "mutated"
	assert.Equal(t, "secret", analyzer.DefaultCandidates()[0])
}

func TestVerifier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("finds every dictionary key", func(t *testing.T) {
		t.Parallel()

		v := analyzer.NewVerifier(analyzer.DefaultCandidates(), nil, nil)
		for _, key := range analyzer.DefaultCandidates() {
			got, ok := v.Verify(ctx, parse(t, signHS256(t, key, jwt.MapClaims{"sub": "1"})))
			require.True(t, ok, key)
			assert.Equal(t, key, got)
		}
	})

	t.Run("strong key is not found", func(t *testing.T) {
		t.Parallel()

		v := analyzer.NewVerifier(analyzer.DefaultCandidates(), nil, nil)
		_, ok := v.Verify(ctx, parse(t, signHS256(t, "k9$Lq2!vR7#pX4wZ", jwt.MapClaims{"sub": "1"})))
		assert.False(t, ok)
	})

	t.Run("first matching candidate wins", func(t *testing.T) {
		t.Parallel()

		var tried []string
		mac := func(key, msg []byte) ([]byte, error) {
			tried = append(tried, string(key))
			return analyzer.HMACSHA256(key, msg)
		}
		v := analyzer.NewVerifier([]string{"a", "b", "c"}, mac, nil)
		got, ok := v.Verify(ctx, parse(t, signHS256(t, "b", jwt.MapClaims{})))
		require.True(t, ok)
		assert.Equal(t, "b", got)
		assert.Equal(t, []string{"a", "b"}, tried)
	})

	t.Run("mac failure skips only that candidate", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		mac := func(key, msg []byte) ([]byte, error) {
			if string(key) == "secret" {
				return nil, boom
			}
			m := hmac.New(sha256.New, key)
			m.Write(msg)
			return m.Sum(nil), nil
		}
		v := analyzer.NewVerifier([]string{"secret", "password"}, mac, nil)

		_, ok := v.Verify(ctx, parse(t, signHS256(t, "secret", jwt.MapClaims{})))
		assert.False(t, ok)

		got, ok := v.Verify(ctx, parse(t, signHS256(t, "password", jwt.MapClaims{})))
		require.True(t, ok)
		assert.Equal(t, "password", got)
	})

	t.Run("undecodable signature is a non-match", func(t *testing.T) {
		t.Parallel()

		v := analyzer.NewVerifier(analyzer.DefaultCandidates(), nil, nil)
		_, ok := v.Verify(ctx, parse(t, rawToken(`{"alg":"HS256"}`, `{}`, "a")))
		assert.False(t, ok)
	})

	t.Run("applies only to HS256 with a signature", func(t *testing.T) {
		t.Parallel()

		v := analyzer.NewVerifier(analyzer.DefaultCandidates(), nil, nil)
		signed := parse(t, signHS256(t, "secret", jwt.MapClaims{}))
		assert.True(t, v.Applies(signed))

		for _, h := range []string{`{"alg":"hs256"}`, `{"alg":"HS384"}`, `{"alg":"none"}`, `{}`} {
			tok := parse(t, rawToken(h, `{}`, signed.Signature))
			assert.False(t, v.Applies(tok), h)
			_, ok := v.Verify(ctx, tok)
			assert.False(t, ok, h)
		}

		empty := parse(t, rawToken(`{"alg":"HS256"}`, `{}`, ""))
		assert.False(t, v.Applies(empty))
	})

	t.Run("signature over different input does not match", func(t *testing.T) {
		t.Parallel()

		v := analyzer.NewVerifier(analyzer.DefaultCandidates(), nil, nil)
		a := parse(t, signHS256(t, "secret", jwt.MapClaims{"sub": "a"}))
		b := parse(t, signHS256(t, "secret", jwt.MapClaims{"sub": "b"}))
		a.Signature = b.Signature
		_, ok := v.Verify(ctx, a)
		assert.False(t, ok)
	})
}
