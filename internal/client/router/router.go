package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/logging"
)

var ErrRouteNotFound = errors.New("route not found")

// AuthState is what the guard needs to know about the session.
type AuthState interface {
	IsAuthenticated() bool
}

// Navigation is the outcome of Navigate: the route to show and the query it
// was requested with. Requested holds the original path when the guard
// redirected.
type Navigation struct {
	Route      Route
	Query      url.Values
	Requested  string
	Redirected bool
}

type Router struct {
	routes    map[string]Route
	auth      AuthState
	loginPath string
	log       logging.Logger
}

// New builds a router over routes. Unauthenticated navigation to a gated
// route is sent to Login, which must be among routes.
func New(auth AuthState, log logging.Logger, routes ...Route) (*Router, error) {
	if log == nil {
		log = logging.Discard()
	}
	r := &Router{
		routes:    make(map[string]Route, len(routes)),
		auth:      auth,
		loginPath: Login,
		log:       log.With("component", "router"),
	}
	for _, route := range routes {
		r.routes[route.Path] = route
	}
	if login, ok := r.routes[r.loginPath]; !ok || login.RequiresAuth {
		return nil, fmt.Errorf("route table needs an ungated %s route", r.loginPath)
	}
	return r, nil
}

// Default builds a router over DefaultRoutes.
func Default(auth AuthState, log logging.Logger) *Router {
	r, _ := New(auth, log, DefaultRoutes()...)
	return r
}

// Navigate resolves target and runs the guard. It reads the session state
// as it is right now and never waits for a pending user fetch.
func (r *Router) Navigate(ctx context.Context, target string) (Navigation, error) {
	path, query, err := splitTarget(target)
	if err != nil {
		return Navigation{}, err
	}

	to, ok := r.routes[path]
	if !ok {
		return Navigation{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	if redirect, ok := r.beforeEach(to); !ok {
		r.log.Debug(ctx, "navigation redirected", "from", to.Path, "to", redirect)
		return Navigation{
			Route:      r.routes[redirect],
			Query:      url.Values{},
			Requested:  to.Path,
			Redirected: true,
		}, nil
	}

	return Navigation{Route: to, Query: query}, nil
}

// beforeEach is the guard: gated routes need an authenticated session.
func (r *Router) beforeEach(to Route) (string, bool) {
	if to.RequiresAuth && !r.auth.IsAuthenticated() {
		return r.loginPath, false
	}
	return "", true
}

// Routes lists the route table sorted by path.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// splitTarget accepts "/users", "users", "#/users?x=1" or a full URL whose
// fragment carries the route (hash routing), and returns the cleaned path
// and its query.
func splitTarget(target string) (string, url.Values, error) {
	target = strings.TrimSpace(target)

	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrRouteNotFound, err)
		}
		if frag := u.EscapedFragment(); frag != "" {
			target = frag
		} else {
			target = u.Path
			if u.RawQuery != "" {
				target += "?" + u.RawQuery
			}
		}
	}

	target = strings.TrimPrefix(target, "#")

	rawPath, rawQuery, _ := strings.Cut(target, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("%w: bad query: %v", ErrRouteNotFound, err)
	}

	path := "/" + strings.Trim(rawPath, "/")
	return path, query, nil
}
