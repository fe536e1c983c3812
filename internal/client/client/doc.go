// Package client contains the client-side building blocks for talking to the
// auth backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Me, ListUsers and SetAccessToken.
//  2. A concrete REST implementation (see HTTPClient) that holds the access
//     token, presents it as a bearer token, tags every request with an
//     X-Request-ID and reports non-2xx responses as *StatusError.
//  3. PeekClaims, an unverified decode of the JWT access token for display.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Every failed call matches ErrRequestFailed with errors.Is. Status codes
// are not translated: a 401 and a 500 look the same to callers.
//
// # Endpoints
//
//	POST /api/auth/register   {email, username, password}
//	POST /api/auth/login      {email, password} -> {accessToken}
//	GET  /api/auth/me         -> User
//	GET  /api/users           -> []User
package client
