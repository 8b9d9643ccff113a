package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/response"
)

type ctx = *handler.BaseContext

type teapot struct{}

func (teapot) Error() string   { return "short and stout" }
func (teapot) StatusCode() int { return http.StatusTeapot }

func serve(h handler.HandlerFunc[ctx]) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.Adapt(h, handler.NewContext, response.JSONErrorHandler[ctx]).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w := serve(func(ctx) handler.Response {
		return response.JSON(map[string]int{"n": 1})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, w.Body.String())

	w = serve(func(ctx) handler.Response {
		return response.JSONWithStatus(nil, 0)
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestString(t *testing.T) {
	t.Parallel()

	w := serve(func(ctx) handler.Response { return response.String("ALIVE") })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "ALIVE", w.Body.String())
}

func TestErrorRendering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "http error",
			err:    response.ErrBadRequest.WithMessage("bad token field"),
			status: http.StatusBadRequest,
			body:   `{"code":"bad_request","message":"bad token field"}`,
		},
		{
			name:   "wrapped http error",
			err:    errors.Join(errors.New("ctx"), response.ErrNotFound),
			status: http.StatusNotFound,
			body:   `{"code":"not_found","message":"Not Found"}`,
		},
		{
			name:   "plain error hides its text",
			err:    errors.New("database password is hunter2"),
			status: http.StatusInternalServerError,
			body:   `{"code":"internal_server_error","message":"Internal Server Error"}`,
		},
		{
			name:   "unknown status code falls back to 500",
			err:    teapot{},
			status: http.StatusInternalServerError,
			body:   `{"code":"internal_server_error","message":"Internal Server Error"}`,
		},
		{
			name:   "details",
			err:    response.ErrTooManyRequests.WithDetails(map[string]any{"retry_after": 3}),
			status: http.StatusTooManyRequests,
			body:   `{"code":"too_many_requests","message":"Too Many Requests","details":{"retry_after":3}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(func(ctx) handler.Response { return response.Error(tt.err) })
			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestHTTPErrorWithError(t *testing.T) {
	t.Parallel()

	base := response.ErrInternalServerError.WithDetails(map[string]any{"a": 1})
	e := base.WithError(errors.New("boom"))
	assert.Equal(t, "boom", e.Details["cause"])
	assert.Equal(t, 1, e.Details["a"])
	assert.NotContains(t, base.Details, "cause", "original details are not mutated")
}

func TestPlainErrorHandler(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	handler.Adapt(func(ctx) handler.Response {
		return response.Error(response.ErrGatewayTimeout.WithMessage("slow"))
	}, handler.NewContext, response.ErrorHandler[ctx]).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Equal(t, "slow", w.Body.String())
}
