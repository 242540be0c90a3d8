package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitdesk/nutrition-hub/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:           "local",
		AuthMode:      "dev",
		AuthRequired:  true,
		JWTSecret:     "test_secret",
		JWTIssuer:     "nutrition-hub",
		JWTTTLMinutes: 60,
	}
}

func TestHandleDevAuthIssuesVerifiableToken(t *testing.T) {
	svc := NewService(testConfig())
	h := NewHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", strings.NewReader(`{"user_id":"nutri-42"}`))
	w := httptest.NewRecorder()
	h.HandleDevAuth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp DevAuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.UserID != "nutri-42" {
		t.Errorf("user_id = %q, want nutri-42", resp.UserID)
	}

	sub, err := svc.VerifyJWT(resp.AccessToken)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if sub != "nutri-42" {
		t.Errorf("sub = %q, want nutri-42", sub)
	}
}

func TestHandleDevAuthDefaultsSubject(t *testing.T) {
	svc := NewService(testConfig())
	h := NewHandlers(svc)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/dev", nil)
	w := httptest.NewRecorder()
	h.HandleDevAuth(w, req)

	var resp DevAuthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UserID != "dev-nutritionist" {
		t.Errorf("user_id = %q, want dev-nutritionist", resp.UserID)
	}
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig())
	token, err := issuer.GenerateToken("nutri-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := testConfig()
	other.JWTSecret = "another_secret"
	if _, err := NewService(other).VerifyJWT(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestRequireAuth(t *testing.T) {
	cfg := testConfig()
	svc := NewService(cfg)
	mw := NewMiddleware(cfg, svc)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.RequireAuth(next)

	// No token.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	// Garbage token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", w.Code)
	}

	// Public paths bypass auth.
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthz: status = %d, want 200", w.Code)
	}

	// Valid token puts the subject into context.
	token, err := svc.GenerateToken("nutri-7")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/diet-requests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: status = %d", w.Code)
	}
	if gotUserID != "nutri-7" {
		t.Errorf("context user id = %q, want nutri-7", gotUserID)
	}
}
