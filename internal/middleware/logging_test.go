package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// =============================================================================
// Request Logging Middleware Tests
// =============================================================================

func TestRequestLoggingMiddleware_LogsBasicInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := NewRequestLoggingMiddleware(logger, "page")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/archive?page=3", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	out := buf.String()

	if !strings.Contains(out, "method=GET") {
		t.Errorf("log should contain method, got: %s", out)
	}
	if !strings.Contains(out, "/archive?page=3") {
		t.Errorf("log should contain path with querystring, got: %s", out)
	}
	if !strings.Contains(out, "status=200") {
		t.Errorf("log should contain status, got: %s", out)
	}
	if !strings.Contains(out, "page=3") {
		t.Errorf("log should surface the page number, got: %s", out)
	}
}

func TestRequestLoggingMiddleware_LogsCustomPageKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := NewRequestLoggingMiddleware(logger, "p")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/?p=7", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), "page=7") {
		t.Errorf("log should read the configured page key, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_LogsHtmxFragment(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := NewRequestLoggingMiddleware(logger, "page")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/?page=2", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), "htmx=true") {
		t.Errorf("log should mark htmx fragment requests, got: %s", buf.String())
	}
}

func TestRequestLoggingMiddleware_RedactsCredentialParams(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := NewRequestLoggingMiddleware(logger, "page")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/archive?page=2&token=sekret-value", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	out := buf.String()

	if strings.Contains(out, "sekret-value") {
		t.Errorf("log should not contain credential values: %s", out)
	}
	if !strings.Contains(out, "REDACTED") {
		t.Errorf("credential params should be redacted, not dropped: %s", out)
	}
	if !strings.Contains(out, "page=2") {
		t.Errorf("feed params should stay readable, got: %s", out)
	}
}

func TestRequestLoggingMiddleware_SkipsNoisyEndpoints(t *testing.T) {
	paths := []string{"/health", "/metrics", "/static/css/main.css"}

	for _, path := range paths {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		mw := NewRequestLoggingMiddleware(logger, "page")

		handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if buf.Len() != 0 {
			t.Errorf("%s should not be logged, got: %s", path, buf.String())
		}
	}
}

func TestRequestLoggingMiddleware_WarnsOnServerError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mw := NewRequestLoggingMiddleware(logger, "page")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	out := buf.String()

	if !strings.Contains(out, "level=WARN") {
		t.Errorf("5xx responses should log at warn level, got: %s", out)
	}
	if !strings.Contains(out, "status=500") {
		t.Errorf("log should contain the status, got: %s", out)
	}
}
