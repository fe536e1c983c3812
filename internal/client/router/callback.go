package router

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoCallbackToken = errors.New("no token in callback")

// Callback is what the OAuth redirect hands to the client.
type Callback struct {
	Token    string
	Provider string
}

// ParseCallback reads the OAuth redirect. raw may be the full redirect URL
// (http://host/#/oauth/callback?token=...&provider=GOOGLE), the route part
// alone, or a bare token.
func ParseCallback(raw string) (Callback, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Callback{}, ErrNoCallbackToken
	}

	if !strings.ContainsAny(raw, "/?#=") {
		return Callback{Token: raw}, nil
	}

	path, query, err := splitTarget(raw)
	if err != nil {
		return Callback{}, err
	}
	if path != OAuthCallback {
		return Callback{}, fmt.Errorf("%w: unexpected route %s", ErrNoCallbackToken, path)
	}

	cb := Callback{
		Token:    query.Get(TokenQueryKey),
		Provider: query.Get(ProviderQueryKey),
	}
	if cb.Token == "" {
		return Callback{}, ErrNoCallbackToken
	}
	return cb, nil
}
