package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ShowConfig(ctx context.Context) error
	Estimate(ctx context.Context) error
	SubmitBatch(ctx context.Context, path string) error
	Status(ctx context.Context) error
	Template(ctx context.Context, path string) error
}

// runREPL reads a line, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("relocost %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: estimate, batch <file>, status, template <path>, config, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, config, template <path>, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "config":
			_ = a.ShowConfig(ctx)

		case "estimate":
			_ = a.Estimate(ctx)

		case "batch":
			if len(args) == 0 {
				printlnFn("Usage: batch <file>")
				continue
			}
			_ = a.SubmitBatch(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "template":
			if len(args) == 0 {
				printlnFn("Usage: template <path>")
				continue
			}
			_ = a.Template(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
