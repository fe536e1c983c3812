package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(ctx context.Context, target string) error
	Callback(ctx context.Context, raw string) error
	Whoami(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the auth CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands
//
//	help                   show available commands
//	home                   show the home page
//	login                  sign in with email and password
//	register               create an account
//	users                  list users (requires sign-in)
//	callback <url|token>   finish an OAuth sign-in
//	whoami                 show the signed-in user
//	refresh                reload the signed-in user
//	logout                 sign out
//	go <path>              open any page, e.g. "go /users"
//	exit | quit            leave the program
//
// Page commands go through the router, so the sign-in guard applies to them.
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("auth%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, users, whoami, refresh, go <path>, logout, exit")
			} else {
				printlnFn("Available commands: home, login, register, callback <url|token>, users, go <path>, exit")
			}

		case "home":
			_ = a.Navigate(ctx, router.Home)

		case "login":
			_ = a.Navigate(ctx, router.Login)

		case "register":
			_ = a.Navigate(ctx, router.Register)

		case "users":
			_ = a.Navigate(ctx, router.Users)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Navigate(ctx, args[0])

		case "callback":
			if len(args) == 0 {
				printlnFn("Usage: callback <url|token>")
				continue
			}
			_ = a.Callback(ctx, args[0])

		case "whoami":
			_ = a.Whoami(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
