package middleware

import (
	"net/http"
	"strings"
)

// isAPIRequest determines if the request expects a JSON response.
//
// This is used to decide whether to return an HTML page or a JSON error.
//
// Checks:
// 1. HX-Request header is NOT present (htmx wants HTML fragments)
// 2. Accept header contains application/json
// 3. Content-Type is application/json
func isAPIRequest(r *http.Request) bool {
	// htmx requests want HTML fragments
	if r.Header.Get("HX-Request") == "true" {
		return false
	}

	// Check Accept header
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") {
		return true
	}

	// Check Content-Type
	contentType := r.Header.Get("Content-Type")
	return strings.Contains(contentType, "application/json")
}

// Stack composes multiple middleware functions into a single middleware.
//
// Middleware is applied in the order provided, meaning the first middleware
// in the slice is the outermost (runs first on request, last on response).
//
// Example:
//
//	stack := Stack(loggingMw.Handler, securityMw.Handler)
//	mux.Handle("GET /", stack(feedHandler))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
