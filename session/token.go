package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by TokenExpiresAt for tokens without an exp
// claim, or tokens that are not JWTs at all.
var ErrNoExpiry = errors.New("token carries no expiry")

// TokenExpiresAt inspects a bearer token's exp claim without verifying
// the signature. Verification is the backend's job; the client only wants
// to know whether presenting the token is already pointless.
func TokenExpiresAt(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrNoExpiry
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrNoExpiry
	}
	return exp.Time, nil
}

// TokenExpired reports whether the token's exp claim is in the past.
// Tokens without a readable expiry are presumed live: the backend is the
// authority and will answer 401 if not.
func TokenExpired(token string, now time.Time) bool {
	exp, err := TokenExpiresAt(token)
	if err != nil {
		return false
	}
	return exp.Before(now)
}
