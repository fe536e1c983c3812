// Package cli provides the interactive command-line client of the auth
// backend.
//
// It wires configuration, the local token store, the HTTP binding, the
// session store and the router, then runs a REPL. Page commands (home,
// login, register, users, go) are resolved by the router so that gated
// pages fall back to the login form while signed out.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and Navigate for details.
package cli
