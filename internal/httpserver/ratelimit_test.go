package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitdesk/nutrition-hub/internal/config"
)

func TestRateLimit_Disabled(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 0}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RateLimitMiddleware(cfg, inner)
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200 with limiter disabled, got %d", i, rr.Code)
		}
	}
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 1, RateLimitBurst: 3}

	handler := RateLimitMiddleware(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 3; i++ {
		if code := send(); code != http.StatusOK {
			t.Fatalf("burst request %d: expected 200, got %d", i, code)
		}
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst exhausted, got %d", code)
	}
}

func TestRateLimit_PerIP(t *testing.T) {
	cfg := &config.Config{RateLimitRPS: 1, RateLimitBurst: 1}

	handler := RateLimitMiddleware(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/templates", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("10.0.0.1:1111"); code != http.StatusOK {
		t.Fatalf("first IP: expected 200, got %d", code)
	}
	if code := send("10.0.0.1:1111"); code != http.StatusTooManyRequests {
		t.Fatalf("first IP second request: expected 429, got %d", code)
	}
	// Another client has its own bucket.
	if code := send("10.0.0.2:2222"); code != http.StatusOK {
		t.Errorf("second IP: expected 200, got %d", code)
	}
}

func TestExtractIP_ForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := extractIP(req); got != "203.0.113.7" {
		t.Errorf("extractIP = %q, want first hop", got)
	}
}
