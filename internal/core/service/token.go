package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eie-idiomas/admin-api/internal/core/domain"
)

// DefaultTokenTTL is the lifetime of a session token when none is configured.
const DefaultTokenTTL = 365 * 24 * time.Hour

// SessionClaims is the claim set carried by a session token.
type SessionClaims struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256 session tokens with a fixed secret.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenSigner returns a signer for secret. A nil clock defaults to
// time.Now; a non-positive ttl defaults to DefaultTokenTTL.
func NewTokenSigner(secret string, ttl time.Duration, now func() time.Time) *TokenSigner {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl, now: now}
}

// Issue signs a new token for user.
func (s *TokenSigner) Issue(user *domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		ID:     user.ID,
		Nombre: user.Nombre,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies raw and returns its claims. The signature is checked before
// the expiry, so a tampered expired token reports domain.ErrInvalidToken and
// only a genuine one reports domain.ErrExpiredSession.
func (s *TokenSigner) Parse(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrExpiredSession
		}
		return nil, domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
