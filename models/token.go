package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credentials are the client id and secret the teacher's workstation was
// provisioned with. They are handed to the adapter through a capability
// (adapter.CredentialProvider) instead of being retained as loose fields.
type Credentials struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	ClientID string `json:"client_id"`
	Secret   string `json:"secret"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenPair is the access/refresh pair returned by the SIS login and refresh
// endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}

// Session is the authenticated state of one client run: who is logged in and
// with which tokens. It is a value passed around explicitly rather than
// hidden adapter state, so callers can inspect expiry and subject.
type Session struct {
	// Teacher is the authenticated subject, filled from the token claims.
	Teacher Teacher `json:"teacher"`

	// Tokens is the current access/refresh pair.
	Tokens TokenPair `json:"-"`

	// ExpiresAt is the access token's "exp" claim; zero if the token does
	// not carry one.
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFromTokens builds a Session from a freshly issued token pair by
// parsing (without verifying, the client holds no signing key) the access
// token's registered claims.
func SessionFromTokens(pair TokenPair) (Session, error) {
	token, _, err := jwt.NewParser().ParseUnverified(pair.AccessToken, jwt.MapClaims{})
	if err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, fmt.Errorf("unexpected access token claims type")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return Session{}, fmt.Errorf("access token subject: %w", err)
	}
	if sub == "" {
		sub = pair.UserID
	}

	s := Session{
		Teacher: Teacher{TeacherID: sub},
		Tokens:  pair,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// Valid reports whether the session still holds a non-expired access token.
// Sessions without an expiry claim are treated as valid until a 401 proves
// otherwise.
func (s Session) Valid() bool {
	if s.Tokens.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || time.Now().Before(s.ExpiresAt)
}
