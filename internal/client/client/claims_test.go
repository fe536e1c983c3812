package client

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-test-secret-test-secret"))
	require.NoError(t, err)
	return s
}

func TestPeekClaims_DecodesBackendToken(t *testing.T) {
	iat := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	exp := iat.Add(time.Hour)

	token := signTestToken(t, accessClaims{
		Roles: []string{"ROLE_USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.org",
			Issuer:    "app",
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	c, err := PeekClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", c.Subject)
	assert.Equal(t, "app", c.Issuer)
	assert.Equal(t, []string{"ROLE_USER"}, c.Roles)
	assert.True(t, iat.Equal(c.IssuedAt))
	assert.True(t, exp.Equal(c.ExpiresAt))

	assert.False(t, c.Expired(iat.Add(30*time.Minute)))
	assert.True(t, c.Expired(exp))
}

func TestPeekClaims_ExpiredTokenStillDecodes(t *testing.T) {
	token := signTestToken(t, jwt.RegisteredClaims{
		Subject:   "bob@example.org",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	c, err := PeekClaims(token)
	require.NoError(t, err)
	assert.True(t, c.Expired(time.Now()))
}

func TestPeekClaims_OpaqueToken(t *testing.T) {
	_, err := PeekClaims("not-a-jwt")
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenClaims_NoExpiryNeverExpires(t *testing.T) {
	c := &TokenClaims{}
	assert.False(t, c.Expired(time.Now()))
}
