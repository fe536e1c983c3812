package cli

import (
	"context"
	"fmt"
	"time"
)

// restoreGrace is how long the first prompt waits for a persisted session
// to be validated.
const restoreGrace = 2 * time.Second

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	switch {
	case snap.Authenticated:
		return fmt.Sprintf(" (%s)", snap.User.Username)
	case snap.Token != "":
		return " (restoring)"
	default:
		return ""
	}
}

// Root prints the greeting and runs the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the auth CLI (type 'help' for commands)")

	a.waitReady(ctx, restoreGrace)
	_ = a.Navigate(ctx, "/")

	runREPL(ctx, a, a.getStatus, a.reader)
}
