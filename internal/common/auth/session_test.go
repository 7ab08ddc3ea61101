package auth

import (
	"testing"
	"time"

	"github.com/frotafleet/frotafleet/internal/common/config"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := config.AuthConfig{
		JWTSecret:    "test-secret",
		Issuer:       "frotafleet",
		SessionHours: 1,
	}

	in := Session{AccountID: "u-1", Login: "JTD", Role: RoleAdmin, Tenant: "JTD"}
	token, exp, err := GenerateSessionToken(cfg, in)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	out, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseSessionToken: %v", err)
	}
	if out != in {
		t.Fatalf("session mismatch: %#v != %#v", out, in)
	}
	if !out.IsAdmin() {
		t.Fatalf("expected admin session")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "secret-a", SessionHours: 1}
	token, _, err := GenerateSessionToken(cfg, Session{AccountID: "u-1", Tenant: "JTD"})
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}

	if _, err := ParseSessionToken(config.AuthConfig{JWTSecret: "secret-b"}, token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}
