package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestLoggingMiddleware logs HTTP requests with timing and status
// information. Feed requests additionally record the page being served and
// whether the response was an htmx fragment, since most debugging here is
// "which page list did that request render".
type RequestLoggingMiddleware struct {
	logger  *slog.Logger
	pageKey string
}

// NewRequestLoggingMiddleware creates a new request logging middleware.
// pageKey is the querystring key carrying the page number.
func NewRequestLoggingMiddleware(logger *slog.Logger, pageKey string) *RequestLoggingMiddleware {
	if pageKey == "" {
		pageKey = "page"
	}
	return &RequestLoggingMiddleware{
		logger:  logger,
		pageKey: pageKey,
	}
}

// Handler returns middleware that logs all HTTP requests.
func (m *RequestLoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip logging for noisy endpoints
		if m.shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		query := r.URL.Query()

		attrs := []any{
			"method", r.Method,
			"path", loggedPath(r.URL.Path, query),
			"status", wrapped.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", getClientIP(r),
			"user_agent", r.UserAgent(),
		}
		if page := query.Get(m.pageKey); page != "" {
			attrs = append(attrs, "page", page)
		}
		if r.Header.Get("HX-Request") == "true" {
			attrs = append(attrs, "htmx", true)
		}

		// Log at appropriate level based on status code
		if wrapped.statusCode >= 500 {
			m.logger.Warn("request", attrs...)
		} else {
			m.logger.Info("request", attrs...)
		}
	})
}

// shouldSkip returns true for paths that should not be logged (too noisy).
func (m *RequestLoggingMiddleware) shouldSkip(path string) bool {
	skipPaths := []string{
		"/health",
		"/metrics",
		"/static/", // Static assets
	}

	for _, skip := range skipPaths {
		if strings.HasPrefix(path, skip) {
			return true
		}
	}

	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggedPath rebuilds the path with its querystring, redacting anything
// credential-shaped. The feed's own parameters (page number, filters) stay
// readable; they are what most log lines are read for.
func loggedPath(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}

	for key := range query {
		switch strings.ToLower(key) {
		case "token", "key", "secret", "password":
			query.Set(key, "[REDACTED]")
		}
	}

	return path + "?" + query.Encode()
}
