package api

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// CheckTokenShape parses a bearer token without verifying its signature
// and rejects values that are not well-formed JWTs. This runs before a
// freshly issued token is persisted locally, so a corrupt response never
// reaches the session store. Expiry is NOT checked here: token expiry is
// only discovered when the backend rejects an authenticated request.
func CheckTokenShape(token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, jwt.MapClaims{}); err != nil {
		return fmt.Errorf("malformed token: %w", err)
	}
	return nil
}

// TokenSubject returns the token's subject claim, when present. Used for
// a best-effort cross-check against the profile id after login; a missing
// claim is not an error worth failing a login over, so callers should
// treat a non-nil error as advisory.
func TokenSubject(token string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject claim")
	}
	return sub, nil
}
