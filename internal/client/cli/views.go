package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/router"
)

// Navigate resolves target through the router and renders the resulting
// view. A gated target visited while signed out renders the login view and,
// once that succeeds, the originally requested view.
func (a *App) Navigate(ctx context.Context, target string) error {
	nav, err := a.router.Navigate(ctx, target)
	if err != nil {
		if errors.Is(err, router.ErrRouteNotFound) {
			printlnFn("No such page:", target)
		}
		return err
	}

	if nav.Redirected {
		printlnFn(fmt.Sprintf("%s needs you to be signed in", nav.Requested))
		if err := a.render(ctx, nav.Route.Path, nav.Query); err != nil {
			return err
		}
		if a.isLoggedIn() {
			return a.Navigate(ctx, nav.Requested)
		}
		return nil
	}

	return a.render(ctx, nav.Route.Path, nav.Query)
}

func (a *App) render(ctx context.Context, path string, query url.Values) error {
	switch path {
	case router.Home:
		return a.homeView(ctx)
	case router.Login:
		if snap := a.session.Snapshot(); snap.Authenticated {
			printlnFn("Already signed in as", snap.User.Email)
			return nil
		}
		return a.Login(ctx)
	case router.Register:
		return a.Register(ctx)
	case router.OAuthCallback:
		return a.completeCallback(ctx, router.Callback{
			Token:    query.Get(router.TokenQueryKey),
			Provider: query.Get(router.ProviderQueryKey),
		})
	case router.Users:
		return a.usersView(ctx)
	default:
		printlnFn("Nothing to show for", path)
		return nil
	}
}

func (a *App) homeView(_ context.Context) error {
	if u := a.session.User(); u != nil {
		if u.HasRole(models.RoleAdmin) {
			printlnFn(fmt.Sprintf("Hello, %s! You can see every account with 'users'.", u.Username))
			return nil
		}
		printlnFn(fmt.Sprintf("Hello, %s!", u.Username))
		return nil
	}
	printlnFn("Welcome! Type 'login' or 'register' to get started.")
	return nil
}

func (a *App) usersView(ctx context.Context) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	users, err := a.session.ListUsers(callCtx)
	if err != nil {
		a.log.Warn(ctx, "failed to list users", "error", err)
		printlnFn("Could not load users:", describeError(err))
		return err
	}
	if len(users) == 0 {
		printlnFn("No users")
		return nil
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tPROVIDER\tENABLED\tROLES")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%t\t%s\n",
			u.ID, u.Username, u.Email, u.Provider, u.Enabled, strings.Join(u.Roles, ","))
	}
	_ = tw.Flush()

	printlnFn(strings.TrimRight(b.String(), "\n"))
	return nil
}
