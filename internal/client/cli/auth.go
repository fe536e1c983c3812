package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/router"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, username and password, validates them and
// creates the account. It does not sign the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := registerForm{Email: email, Username: username, Password: password}
	if err := form.Validate(); err != nil {
		printlnFn("Invalid input:", err)
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.session.Register(callCtx, form.Email, form.Username, form.Password); err != nil {
		a.log.Warn(ctx, "registration failed", "email", form.Email, "error", err)
		printlnFn("Registration failed:", describeError(err))
		return err
	}

	printlnFn("Account created, you can log in now.")
	return nil
}

// Login prompts for credentials, validates them and signs in. On success
// the session holds both the token and the user.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	form := loginForm{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		printlnFn("Invalid input:", err)
		return err
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.session.Login(callCtx, form.Email, form.Password); err != nil {
		a.log.Warn(ctx, "login failed", "email", form.Email, "error", err)
		printlnFn("Login failed:", describeError(err))
		return err
	}
	return nil
}

// Callback completes an OAuth sign-in from the redirect URL (or the bare
// token) the backend sent the browser to.
func (a *App) Callback(ctx context.Context, raw string) error {
	cb, err := router.ParseCallback(raw)
	if err != nil {
		printlnFn("Callback rejected:", err)
		return err
	}
	return a.completeCallback(ctx, cb)
}

func (a *App) completeCallback(ctx context.Context, cb router.Callback) error {
	callCtx, cancel := a.callCtx(ctx)
	defer cancel()

	if err := a.session.SetTokenFromCallback(callCtx, cb.Token); err != nil {
		a.log.Warn(ctx, "oauth callback failed", "provider", cb.Provider, "error", err)
		printlnFn("Sign-in failed:", describeError(err))
		return err
	}
	if cb.Provider != "" {
		a.log.Info(ctx, "signed in with external provider", "provider", cb.Provider)
	}
	return a.Navigate(ctx, router.Home)
}

// Refresh asks the backend for the current user again. A rejected token
// signs the session out.
func (a *App) Refresh(ctx context.Context) error {
	if a.session.Token() == "" {
		printlnFn("Not signed in")
		return nil
	}

	callCtx, cancel := a.callCtx(ctx)
	defer cancel()
	a.session.FetchMe(callCtx)

	if !a.session.IsAuthenticated() {
		printlnFn("Session is no longer valid")
	}
	return nil
}

// Whoami prints the current user and what the access token says about itself.
func (a *App) Whoami(ctx context.Context) error {
	snap := a.session.Snapshot()
	switch {
	case snap.Authenticated:
	case snap.Token != "":
		printlnFn("Session is being restored, try again shortly")
		return nil
	default:
		printlnFn("Not signed in")
		return nil
	}

	u := snap.User
	printlnFn(fmt.Sprintf("%s <%s>", u.Username, u.Email))
	printlnFn(fmt.Sprintf("  id: %d, provider: %s, enabled: %t", u.ID, u.Provider, u.Enabled))
	if len(u.Roles) > 0 {
		printlnFn(fmt.Sprintf("  roles: %v", u.Roles))
	}
	if !u.CreatedAt.IsZero() {
		printlnFn("  member since:", u.CreatedAt.Format("2006-01-02"))
	}

	printlnFn("  token:", common.MaskToken(snap.Token))
	claims, err := client.PeekClaims(snap.Token)
	if err != nil {
		a.log.Debug(ctx, "token is not a readable JWT", "error", err)
		return nil
	}
	if !claims.ExpiresAt.IsZero() {
		expires := claims.ExpiresAt.Local().Format("2006-01-02 15:04:05")
		if claims.Expired(time.Now()) {
			expires += " (expired)"
		}
		printlnFn("  expires:", expires)
	}
	return nil
}

// Logout drops the session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	if a.session.Token() == "" {
		printlnFn("Not signed in")
		return nil
	}
	a.session.Logout(ctx)
	return nil
}

// describeError turns session and binding errors into a short line for the user.
func describeError(err error) string {
	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		if se.Body != "" {
			return fmt.Sprintf("server answered %s: %s", se.Status, se.Body)
		}
		return fmt.Sprintf("server answered %s", se.Status)
	case errors.Is(err, services.ErrSessionInvalidated):
		return "the server did not accept the session"
	case errors.Is(err, context.DeadlineExceeded):
		return "the server did not answer in time"
	case errors.Is(err, client.ErrRequestFailed):
		return "the server could not be reached"
	default:
		return err.Error()
	}
}
