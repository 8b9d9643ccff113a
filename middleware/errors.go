package middleware

import (
	"net/http"

	"github.com/dmitrymomot/jwtaudit/core/response"
)

func statusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return response.AsHTTPError(err).Status
}
