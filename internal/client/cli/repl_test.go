package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Navigate(_ context.Context, target string) error {
	f.calls = append(f.calls, "navigate "+target)
	if target == "/login" {
		f.loggedIn = true
	}
	return nil
}
func (f *fakeExec) Callback(_ context.Context, raw string) error {
	f.calls = append(f.calls, "callback "+raw)
	return nil
}
func (f *fakeExec) Whoami(context.Context) error  { f.calls = append(f.calls, "whoami"); return nil }
func (f *fakeExec) Refresh(context.Context) error { f.calls = append(f.calls, "refresh"); return nil }
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	_ = captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"home",
		"login",
		"users",
		"go /users?page=2",
		"callback http://localhost:5173/#/oauth/callback?token=abc",
		"whoami",
		"refresh",
		"logout",
		"register",
		"exit",
		"home",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"navigate /",
		"navigate /login",
		"navigate /users",
		"navigate /users?page=2",
		"callback http://localhost:5173/#/oauth/callback?token=abc",
		"whoami",
		"refresh",
		"logout",
		"navigate /register",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("go\ncallback\n\nfoobar\nquit\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return " (s)" }, bufio.NewReader(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: go <path>")
	assert.Contains(t, *out, "Usage: callback <url|token>")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "auth (s)>")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help")))

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "logout")
	assert.NotContains(t, joined, "register")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	_ = captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami")))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}
