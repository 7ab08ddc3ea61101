package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frotafleet/frotafleet/internal/common/auth"
	"github.com/frotafleet/frotafleet/internal/common/config"
	"github.com/frotafleet/frotafleet/internal/common/logger"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	log, err := logger.NewLogrusLogger("error", "text", "stdout", "")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", SessionHours: 1},
	}
	return NewAPI(cfg, log, nil, nil, nil, nil, nil)
}

func token(t *testing.T, a *API, sess auth.Session) string {
	t.Helper()
	tok, _, err := auth.GenerateSessionToken(a.cfg.Auth, sess)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	return tok
}

func TestRequireSession(t *testing.T) {
	a := newTestAPI(t)

	var got auth.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := a.requireSession(next)

	// No token.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	// Valid token: session lands in the context.
	sess := auth.Session{AccountID: "u-1", Login: "JTD", Role: auth.RoleAdmin, Tenant: "JTD"}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/vehicles", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, a, sess))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if got.Tenant != "JTD" || got.AccountID != "u-1" {
		t.Fatalf("unexpected session in context: %#v", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	a := newTestAPI(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.requireSession(a.requireAdmin(next))

	regular := auth.Session{AccountID: "u-2", Login: "driver", Role: auth.RoleRegular, Tenant: "JTD"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, a, regular))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular role, got %d", rec.Code)
	}

	admin := auth.Session{AccountID: "u-1", Login: "JTD", Role: auth.RoleAdmin, Tenant: "JTD"}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, a, admin))
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", rec.Code)
	}
}
