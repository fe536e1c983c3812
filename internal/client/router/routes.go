// Package router resolves navigation targets for the client and applies the
// authentication guard before a view is shown.
package router

const (
	Home          = "/"
	Login         = "/login"
	Register      = "/register"
	OAuthCallback = "/oauth/callback"
	Users         = "/users"

	// Query keys of the OAuth redirect.
	TokenQueryKey    = "token"
	ProviderQueryKey = "provider"
)

// Route is one navigation target.
type Route struct {
	Path         string
	RequiresAuth bool
}

// DefaultRoutes is the client's route table. Only the user list is gated.
func DefaultRoutes() []Route {
	return []Route{
		{Path: Home},
		{Path: Login},
		{Path: Register},
		{Path: OAuthCallback},
		{Path: Users, RequiresAuth: true},
	}
}
