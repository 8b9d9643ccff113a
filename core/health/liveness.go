package health

import (
	"github.com/dmitrymomot/jwtaudit/core/handler"
	"github.com/dmitrymomot/jwtaudit/core/response"
)

// Liveness always returns "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
