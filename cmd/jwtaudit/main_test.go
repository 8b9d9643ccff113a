package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/jwtaudit/internal/api"
	"github.com/dmitrymomot/jwtaudit/pkg/analyzer"
)

func sign(t *testing.T, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func exec(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	code, _, stderr := exec(t, "")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Usage: jwtaudit")

	code, _, stderr = exec(t, "", "frobnicate")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)

	code, _, _ = exec(t, "", "analyze", "-bogus")
	assert.Equal(t, exitUsage, code)

	code, stdout, _ := exec(t, "", "help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Commands:")
}

func TestRunAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("argument", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := exec(t, "", "analyze", sign(t, "secret"))
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "Threat level: HIGH")
		assert.Contains(t, stdout, "Weak Secret Detected")
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := exec(t, sign(t, "password")+"\n", "analyze")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, `"password"`)
	})

	t.Run("json for several tokens keeps argument order", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := exec(t, "", "analyze", "-json", "bad", sign(t, "test"))
		require.Equal(t, exitOK, code)

		dec := json.NewDecoder(strings.NewReader(stdout))
		var first, second struct {
			Result struct {
				IsValid bool `json:"isValid"`
			} `json:"result"`
			Tier string `json:"tier"`
		}
		require.NoError(t, dec.Decode(&first))
		require.NoError(t, dec.Decode(&second))
		assert.False(t, first.Result.IsValid)
		assert.True(t, second.Result.IsValid)
		assert.Equal(t, "HIGH", second.Tier)
	})

	t.Run("malformed token still succeeds", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := exec(t, "", "analyze", "a.b")
		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout, "expected 3 parts")
	})
}

func TestRunWatch(t *testing.T) {
	t.Parallel()

	t.Run("single line", func(t *testing.T) {
		t.Parallel()

		code, stdout, _ := exec(t, sign(t, "secret")+"\n", "watch")
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "HIGH 5/10 HS256 NO_EXP,WEAK_SECRET\n", stdout)
	})

	t.Run("newest line is always printed", func(t *testing.T) {
		t.Parallel()

		input := strings.Join([]string{sign(t, "secret"), "", "x.y", "a.b"}, "\n")
		code, stdout, _ := exec(t, input, "watch")
		assert.Equal(t, exitOK, code)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		require.NotEmpty(t, lines)
		assert.LessOrEqual(t, len(lines), 3)
		assert.Equal(t, "ERROR invalid token format: expected 3 parts, got 2", lines[len(lines)-1])
	})
}

func TestRunServeInvalidAddress(t *testing.T) {
	t.Parallel()

	code, _, stderr := exec(t, "", "serve", "-addr", "256.0.0.1:-1")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "jwtaudit:")
}

func TestNewLoggerTagsAnalyzerRecordsWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(Config{AppName: "jwtaudit", AppEnv: "production", LogLevel: "debug"}, &buf)
	h := api.New(analyzer.New(analyzer.WithLogger(log)), log, api.Config{}).Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(`{"token":"`+sign(t, "secret")+`"}`))
	req.Header.Set("X-Request-ID", "ignored-without-use-existing")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	id := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, id)
	assert.NotEqual(t, "ignored-without-use-existing", id)

	var analyzed map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		if record["msg"] == "token analyzed" {
			analyzed = record
		}
	}
	require.NotNil(t, analyzed)
	assert.Equal(t, id, analyzed["request_id"])
	assert.Equal(t, "production", analyzed["env"])
}
