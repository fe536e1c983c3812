package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophauth/internal/client/router"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	session services.SessionStore
	router  *router.Router
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	db          *sql.DB
	unsubscribe func()
	signedIn    atomic.Bool
}

// NewApp wires the local database, the HTTP binding, the session store and
// the router. The session starts restoring a persisted token right away.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerURL, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSession(ctx, api, metadata.NewSQLiteRepository(db), log)

	a := newApp(c, session, log)
	a.db = db
	return a, nil
}

// newApp builds an App around an existing session store.
func newApp(c *config.Config, session services.SessionStore, log logging.Logger) *App {
	a := &App{
		config:  c,
		session: session,
		router:  router.Default(session, log),
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	a.signedIn.Store(session.IsAuthenticated())
	a.unsubscribe = session.Subscribe(a.onSessionChange)
	return a
}

// Run blocks in the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close detaches from the session and closes the local database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		return err
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// onSessionChange prints sign-in and sign-out transitions. It may run on
// the background goroutine that restores the session at startup.
func (a *App) onSessionChange(s services.Snapshot) {
	if a.signedIn.Swap(s.Authenticated) == s.Authenticated {
		return
	}
	if s.Authenticated {
		printlnFn(fmt.Sprintf("Signed in as %s", s.User.Email))
	} else {
		printlnFn("Signed out")
	}
}

// callCtx bounds a single backend call by the configured request timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// waitReady gives a pending session restore a short grace period so the
// first prompt shows the restored user. It never blocks longer than d.
func (a *App) waitReady(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-a.session.Ready():
	case <-t.C:
	case <-ctx.Done():
	}
}
