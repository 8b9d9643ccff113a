package response

import (
	"net/http"

	"github.com/dmitrymomot/jwtaudit/core/handler"
)

// Error returns a handler response that propagates the given error to the
// error handler passed to handler.Adapt.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
