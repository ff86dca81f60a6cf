package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func basicAuthHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func metricsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pagefold_http_requests_total 42"))
	})
}

func TestMetricsAuthMiddleware_AllowsValidCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("scraper", "secret123")

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("Authorization", basicAuthHeader("scraper", "secret123"))
	rec := httptest.NewRecorder()

	mw.Handler(metricsHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_RejectsWrongPassword(t *testing.T) {
	mw := NewMetricsAuthMiddleware("scraper", "secret123")

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.Header.Set("Authorization", basicAuthHeader("scraper", "wrong"))
	rec := httptest.NewRecorder()

	mw.Handler(metricsHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_RejectsMissingCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("scraper", "secret123")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	mw.Handler(metricsHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got == "" {
		t.Error("401 response should carry a WWW-Authenticate challenge")
	}
}

func TestMetricsAuthMiddleware_DisabledWithoutFullCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both empty", "", ""},
		{"username only", "scraper", ""},
		{"password only", "", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewMetricsAuthMiddleware(tt.username, tt.password)

			req := httptest.NewRequest("GET", "/metrics", nil)
			rec := httptest.NewRecorder()

			mw.Handler(metricsHandler()).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("auth should be disabled, got status %d", rec.Code)
			}
		})
	}
}
