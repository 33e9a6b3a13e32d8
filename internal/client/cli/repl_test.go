package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                  { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error { return s.record("register") }
func (s *stubExec) Login(ctx context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error   { return s.record("logout") }
func (s *stubExec) Add(ctx context.Context) error      { return s.record("add") }
func (s *stubExec) List(ctx context.Context) error     { return s.record("list") }
func (s *stubExec) Stats(ctx context.Context) error    { return s.record("stats") }
func (s *stubExec) Suggest(ctx context.Context) error  { return s.record("suggest") }
func (s *stubExec) Reload(ctx context.Context) error   { return s.record("reload") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) {
		lines = append(lines, strings.TrimRight(fmt.Sprintln(args...), "\n"))
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(t *testing.T, a execIface, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	a := &stubExec{loggedIn: true}
	runScript(t, a, "add\nlist\nstats\nsuggest\nreload\nlogout\nexit\n")
	assert.Equal(t, []string{"add", "list", "stats", "suggest", "reload", "logout"}, a.calls)
}

func TestREPL_ListShortcut(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "l\nquit\n")
	assert.Equal(t, []string{"list"}, a.calls)
}

func TestREPL_IgnoresBlankLines(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "\n   \nlogin\nexit\n")
	assert.Equal(t, []string{"login"}, a.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	out := captureOutput(t)
	a := &stubExec{}
	runScript(t, a, "frobnicate\nexit\n")
	assert.Empty(t, a.calls)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "Unknown command")
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	out := captureOutput(t)
	runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out, "\n"), "register, login")

	out = captureOutput(t)
	runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(*out, "\n"), "add")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "login") // no trailing newline, then EOF
	assert.Equal(t, []string{"login"}, a.calls)
}
