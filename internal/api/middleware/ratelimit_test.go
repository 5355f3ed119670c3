package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"credit-engine/internal/config"
)

func TestRateLimiterMiddleware(t *testing.T) {
	const statusErrorMsg = "expected status %d, got %d"

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("passes through when disabled", func(t *testing.T) {
		cfg := config.RateLimitConfig{Enabled: false, RPS: 1}
		middleware := NewRateLimiterMiddleware(cfg, nil, logger)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		rec := httptest.NewRecorder()

		middleware.Middleware(nextHandler).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf(statusErrorMsg, http.StatusOK, rec.Code)
		}
	})

	t.Run("disables itself without a Redis client", func(t *testing.T) {
		cfg := config.RateLimitConfig{Enabled: true, RPS: 1}
		middleware := NewRateLimiterMiddleware(cfg, nil, logger)

		if middleware.IsEnabled() {
			t.Error("expected rate limiter to be disabled without a Redis client")
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:12345"
		rec := httptest.NewRecorder()

		middleware.Middleware(nextHandler).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf(statusErrorMsg, http.StatusOK, rec.Code)
		}
	})
}

func TestRateLimiterExtractIP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rl := NewRateLimiterMiddleware(config.RateLimitConfig{}, nil, logger)

	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		req.RemoteAddr = "127.0.0.1:12345"

		if ip := rl.extractIP(req); ip != "10.0.0.1" {
			t.Errorf("expected 10.0.0.1, got %s", ip)
		}
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.3")
		req.RemoteAddr = "127.0.0.1:12345"

		if ip := rl.extractIP(req); ip != "10.0.0.3" {
			t.Errorf("expected 10.0.0.3, got %s", ip)
		}
	})

	t.Run("uses the remote address host as last resort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.5:54321"

		if ip := rl.extractIP(req); ip != "192.168.1.5" {
			t.Errorf("expected 192.168.1.5, got %s", ip)
		}
	})

	t.Run("ignores a garbage X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "not-an-ip")
		req.RemoteAddr = "192.168.1.6:54321"

		if ip := rl.extractIP(req); ip != "192.168.1.6" {
			t.Errorf("expected 192.168.1.6, got %s", ip)
		}
	})
}
