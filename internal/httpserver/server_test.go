package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitdesk/nutrition-hub/internal/config"
	"github.com/google/uuid"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:                  "local",
		Port:                 8080,
		AuthMode:             "none",
		JWTSecret:            "test-secret",
		JWTIssuer:            "nutrition-hub",
		JWTTTLMinutes:        60,
		DefaultSlotMinutes:   60,
		ScheduleMaxRangeDays: 90,
		Blob: config.BlobConfig{
			Mode:      config.BlobModeLocal,
			DraftsDir: t.TempDir(),
		},
	}
}

func TestHealthz(t *testing.T) {
	srv := New(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status=ok, got %s", resp["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := New(testConfig(t))

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	w := httptest.NewRecorder()

	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestRoutesRegistered(t *testing.T) {
	srv := New(testConfig(t))

	// With auth disabled every listing endpoint should answer 200 even on an
	// empty storage.
	for _, path := range []string{
		"/v1/diet-requests",
		"/v1/templates",
		"/v1/availability",
		"/v1/session-requests",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.mux.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, body = %s", path, w.Code, w.Body.String())
		}
	}
}

func TestExportRouteRejectsUnknownFile(t *testing.T) {
	srv := New(testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/v1/diet-plans/"+uuid.NewString()+"/export.csv", nil)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown export format, got %d", w.Code)
	}
}

func TestAuthChain(t *testing.T) {
	cfg := testConfig(t)
	cfg.AuthMode = "dev"
	cfg.AuthRequired = true
	srv := New(cfg)
	handler := srv.Handler()

	// Without a token the API is closed.
	req := httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	// The dev auth endpoint stays public and issues a working token.
	req = httptest.NewRequest(http.MethodPost, "/v1/auth/dev", strings.NewReader(`{"user_id":"nutri-1"}`))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("dev auth: status = %d, body = %s", w.Code, w.Body.String())
	}
	var authResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&authResp); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.AccessToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d, body = %s", w.Code, w.Body.String())
	}
}
