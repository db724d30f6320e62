// Package auth mints and verifies the service's bearer tokens.
//
// Two token kinds exist, each signed with its own HMAC secret: session
// tokens for logged-in customers and reset tokens for the password-reset
// flow. Disjoint secrets mean a reset token can never be replayed as a
// session token, and vice versa. Verification is stateless: it checks
// signature and expiry only and never consults storage.
package auth

import (
	"errors"
	"time"

	"github.com/akarpov87/custauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Kind discriminates which signing secret and TTL apply to a token.
type Kind string

const (
	KindSession Kind = "session"
	KindReset   Kind = "reset"
)

// Claims carries the registered claims plus the customer identity (email).
type Claims struct {
	jwt.RegisteredClaims
	Identity string `json:"identity"`
}

// Issuer signs and verifies tokens of both kinds. The secrets are immutable
// process-wide configuration; an Issuer is safe for concurrent use.
type Issuer struct {
	sessionSecret []byte
	resetSecret   []byte
	sessionTTL    time.Duration
	resetTTL      time.Duration
}

func NewIssuer(sessionSecret, resetSecret []byte, sessionTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{
		sessionSecret: sessionSecret,
		resetSecret:   resetSecret,
		sessionTTL:    sessionTTL,
		resetTTL:      resetTTL,
	}
}

func (i *Issuer) keyAndTTL(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindSession:
		return i.sessionSecret, i.sessionTTL, nil
	case KindReset:
		return i.resetSecret, i.resetTTL, nil
	default:
		return nil, 0, common.ErrInvalidToken
	}
}

// Issue produces a signed HS256 token for the identity with expiry
// now + the kind's TTL.
func (i *Issuer) Issue(identity string, kind Kind) (string, error) {
	secret, ttl, err := i.keyAndTTL(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Identity: identity,
	})

	return token.SignedString(secret)
}

// Verify checks the token's signature against the kind's secret and its
// expiry against the current time, and returns the identity claim.
// Expired tokens yield common.ErrTokenExpired; tampered, malformed, or
// wrong-kind tokens yield common.ErrInvalidToken.
func (i *Issuer) Verify(tokenString string, kind Kind) (string, error) {
	secret, _, err := i.keyAndTTL(kind)
	if err != nil {
		return "", err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Identity == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Identity, nil
}
