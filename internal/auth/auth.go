// Package auth issues and checks the bearer tokens that tie API calls to a
// server-side game session.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "geminus"

// ErrInvalidToken is returned for missing, expired or tampered tokens
var ErrInvalidToken = errors.New("invalid token")

type ctxKey struct{}

// Sessions signs session tokens with an HMAC key
type Sessions struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSessions creates a token issuer. An empty secret generates a random key,
// which invalidates outstanding tokens on restart.
func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("signing key must be at least 32 bytes, got %d", len(key))
	}
	return &Sessions{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for the given session id
func (s *Sessions) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token and returns its session id
func (s *Sessions) Parse(tok string) (string, error) {
	if tok == "" {
		return "", ErrInvalidToken
	}
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// RequireSession rejects requests without a valid bearer token and stores the
// session id in the request context.
func (s *Sessions) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		sessionID, err := s.Parse(strings.TrimSpace(tok))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), sessionID)))
	})
}

// WithSessionID returns a context carrying the session id
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, sessionID)
}

// SessionID returns the session id stored by RequireSession
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
