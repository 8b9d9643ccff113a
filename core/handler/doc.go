// Package handler defines the request handling contract shared by the HTTP packages.
//
// Handlers return a Response, a function that writes to the http.ResponseWriter,
// instead of writing directly. This lets middleware decorate the response (add
// headers, observe status codes) before anything is sent.
//
//	func hello(ctx *handler.BaseContext) handler.Response {
//		return response.JSON(map[string]string{"hello": "world"})
//	}
//
//	mux := http.NewServeMux()
//	mux.Handle("GET /hello", handler.Adapt(
//		handler.Chain(hello, middleware.RequestID[*handler.BaseContext]()),
//		handler.NewContext,
//		response.JSONErrorHandler[*handler.BaseContext],
//	))
package handler
