// Package response provides handler.Response constructors for plain text and
// JSON bodies, and structured HTTP errors.
//
//	func analyze(ctx *handler.BaseContext) handler.Response {
//		var req Request
//		if err := json.NewDecoder(ctx.Request().Body).Decode(&req); err != nil {
//			return response.Error(response.ErrBadRequest.WithMessage("invalid JSON body"))
//		}
//		return response.JSON(result)
//	}
//
// Errors returned from a Response reach the ErrorHandler given to handler.Adapt.
// JSONErrorHandler writes HTTPError values as {"code": ..., "message": ...} with
// their status; any other error becomes a 500 without leaking its text.
package response
