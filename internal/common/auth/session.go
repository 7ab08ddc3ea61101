// Package auth issues and verifies the session tokens that carry the
// authenticated identity. Everything downstream reads the tenant from a
// Session, never from request parameters.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frotafleet/frotafleet/internal/common/config"
)

// Role values stored on accounts and carried in sessions.
const (
	RoleAdmin   = "admin"
	RoleRegular = "comum"
)

// Session is the authenticated request identity: which account is
// calling and which tenant its data lives under.
type Session struct {
	AccountID string
	Login     string
	Role      string
	Tenant    string
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Claims is the JWT payload for a session token.
type Claims struct {
	Login  string `json:"login"`
	Role   string `json:"role"`
	Tenant string `json:"tenant"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs an HS256 JWT for the given session.
func GenerateSessionToken(cfg config.AuthConfig, s Session) (token string, expiresAt time.Time, err error) {
	if s.AccountID == "" {
		return "", time.Time{}, fmt.Errorf("account id is empty")
	}
	if cfg.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("jwt_secret is empty")
	}
	ttl := time.Duration(cfg.SessionHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	expiresAt = now.Add(ttl)

	c := Claims{
		Login:  s.Login,
		Role:   s.Role,
		Tenant: s.Tenant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.AccountID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken verifies a token string and rebuilds the Session.
func ParseSessionToken(cfg config.AuthConfig, tokenStr string) (Session, error) {
	if cfg.JWTSecret == "" {
		return Session{}, fmt.Errorf("jwt_secret is empty")
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("invalid or expired session token")
	}
	return Session{
		AccountID: claims.Subject,
		Login:     claims.Login,
		Role:      claims.Role,
		Tenant:    claims.Tenant,
	}, nil
}
