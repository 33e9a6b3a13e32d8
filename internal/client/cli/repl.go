package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Add(ctx context.Context) error
	List(ctx context.Context) error
	Stats(ctx context.Context) error
	Suggest(ctx context.Context) error
	Reload(ctx context.Context) error
}

// runREPL reads lines from scanner, takes the first token as the command
// and dispatches to a. It exits on EOF or "exit"/"quit". Handler errors
// are printed, never fatal: the loop always comes back to the prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	run := func(err error) {
		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}

	for {
		printlnFn(fmt.Sprintf("log %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, stats, suggest, reload, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			run(a.Register(ctx))

		case "login":
			run(a.Login(ctx))

		case "logout":
			run(a.Logout(ctx))

		case "add":
			run(a.Add(ctx))

		case "l", "list":
			run(a.List(ctx))

		case "stats":
			run(a.Stats(ctx))

		case "suggest":
			run(a.Suggest(ctx))

		case "reload":
			run(a.Reload(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
