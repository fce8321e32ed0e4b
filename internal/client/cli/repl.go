package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Search(ctx context.Context) error
	AddFlight(ctx context.Context) error
	Book(ctx context.Context) error
	Tickets(ctx context.Context) error
	Cancel(ctx context.Context) error
	Profile(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a. It returns on
// EOF or when the user types "exit" or "quit".
//
// Errors returned by commands are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("air %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error
		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: search, book, (t)ickets, cancel, addflight, profile, logout, exit")
			} else {
				printlnFn("Available commands: register, login, search, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "search":
			cmdErr = a.Search(ctx)

		case "addflight":
			cmdErr = a.AddFlight(ctx)

		case "book":
			cmdErr = a.Book(ctx)

		case "t", "tickets":
			cmdErr = a.Tickets(ctx)

		case "cancel":
			cmdErr = a.Cancel(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
	}
}
