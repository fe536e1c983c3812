// Package common contains shared constants and small helpers used across
// the gophauth client packages.
package common

const (
	// AccessTokenKey is the metadata key under which the access token is
	// persisted between runs.
	AccessTokenKey = "accessToken"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)
