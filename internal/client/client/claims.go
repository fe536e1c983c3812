package client

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the access token says about itself. It is decoded
// without verifying the signature and must only be used for display.
type TokenClaims struct {
	Subject   string
	Issuer    string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type accessClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// PeekClaims decodes the payload of a JWT access token. Opaque (non-JWT)
// tokens yield ErrMalformedToken.
func PeekClaims(token string) (*TokenClaims, error) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	tc := &TokenClaims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		Roles:   claims.Roles,
	}
	if claims.IssuedAt != nil {
		tc.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		tc.ExpiresAt = claims.ExpiresAt.Time
	}
	return tc, nil
}
