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
	isVerified() bool
	Verify(ctx context.Context) error
	Whoami(ctx context.Context) error
	Submit(ctx context.Context, paths []string) error
	Status(ctx context.Context) error
	Report(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the BidSmart CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	  - help                 — show available commands
//	  - submit <file...>     — submit documents for analysis and wait
//	  - status               — show the state of the last submitted job
//	  - verify               — verify an email address with a one-time code
//	  - whoami               — show the current verified email
//	  - report               — show the analysis report (requires verification)
//	  - logout               — drop the verified session
//	  - exit | quit          — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bs> %s > ", statusFn()))
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
			if a.isVerified() {
				printlnFn("Available commands: submit <file...>, status, report, whoami, logout, exit")
			} else {
				printlnFn("Available commands: submit <file...>, status, verify, exit")
			}

		case "submit":
			if len(args) == 0 {
				printlnFn("Usage: submit <file> [file...]")
				continue
			}
			_ = a.Submit(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "report":
			_ = a.Report(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
