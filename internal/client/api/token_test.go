package api

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestCheckTokenShape_WellFormed(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "u1"})
	require.NoError(t, CheckTokenShape(tok))
}

func TestCheckTokenShape_Rejects(t *testing.T) {
	require.Error(t, CheckTokenShape(""))
	require.Error(t, CheckTokenShape("not-a-jwt"))
	require.Error(t, CheckTokenShape("a.b"))
}

func TestTokenSubject_ReturnsSub(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "u1"})
	sub, err := TokenSubject(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", sub)
}

func TestTokenSubject_MissingClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"role": "customer"})
	_, err := TokenSubject(tok)
	require.Error(t, err)
}
