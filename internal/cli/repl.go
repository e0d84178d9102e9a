package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"libradesk/internal/notify"
	"libradesk/internal/view"
)

// command is one REPL verb. Handlers log and notify through the coordinator;
// the loop itself only dispatches.
type command struct {
	usage string
	about string
	run   func(ctx context.Context, args []string) error
}

// commandTable is the explicit event-to-handler binding of the client: every
// user-triggered action goes through exactly one entry here.
func (a *App) commandTable() (map[string]*command, []string) {
	table := map[string]*command{
		"users": {
			usage: "users",
			about: "refresh and show the user registry",
			run:   func(ctx context.Context, _ []string) error { return a.coord.RefreshUsers(ctx) },
		},
		"books": {
			usage: "books",
			about: "refresh and show the book catalog",
			run:   func(ctx context.Context, _ []string) error { return a.coord.RefreshBooks(ctx) },
		},
		"tx": {
			usage: "tx",
			about: "refresh and show the transaction ledger",
			run:   func(ctx context.Context, _ []string) error { return a.coord.RefreshTransactions(ctx) },
		},
		"issue": {
			usage: "issue [user-id book-id]",
			about: "issue a book to a user",
			run:   a.issueCmd,
		},
		"return": {
			usage: "return [transaction-id book-id]",
			about: "return a book for an open transaction",
			run:   a.returnCmd,
		},
		"adduser": {
			usage: "adduser",
			about: "register a new user",
			run:   a.addUserCmd,
		},
		"addbook": {
			usage: "addbook",
			about: "add a book to the catalog",
			run:   a.addBookCmd,
		},
		"deluser": {
			usage: "deluser <id>",
			about: "delete a user",
			run: func(ctx context.Context, args []string) error {
				return a.coord.RemoveUser(ctx, argID(args))
			},
		},
		"delbook": {
			usage: "delbook <id>",
			about: "delete a book",
			run: func(ctx context.Context, args []string) error {
				return a.coord.RemoveBook(ctx, argID(args))
			},
		},
		"status": {
			usage: "status",
			about: "show per-service liveness",
			run: func(_ context.Context, _ []string) error {
				fmt.Fprintln(a.out, a.statusLine())
				return nil
			},
		},
		"dismiss": {
			usage: "dismiss",
			about: "dismiss the current notification",
			run: func(_ context.Context, _ []string) error {
				a.notifier.Dismiss()
				return nil
			},
		},
	}

	table["transactions"] = table["tx"]

	order := []string{
		"users", "books", "tx",
		"issue", "return",
		"adduser", "addbook", "deluser", "delbook",
		"status", "dismiss",
	}
	return table, order
}

// repl reads commands until EOF or exit. Handler errors are already
// translated into notifications by the coordinator, so the loop stays quiet
// about them.
func (a *App) repl(ctx context.Context) {
	table, order := a.commandTable()

	for {
		fmt.Fprintf(a.out, "libradesk [%s] > ", a.statusLine())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			a.log.Error(ctx, "reading command", "error", err)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			for _, n := range order {
				fmt.Fprintf(a.out, "  %-32s %s\n", table[n].usage, table[n].about)
			}
			fmt.Fprintf(a.out, "  %-32s %s\n", "exit", "leave the program")

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			cmd, ok := table[name]
			if !ok {
				fmt.Fprintln(a.out, "Unknown command:", name)
				continue
			}
			_ = cmd.run(ctx, args)
		}
	}
}

func (a *App) issueCmd(ctx context.Context, args []string) error {
	userID, bookID, ok := twoArgIDs(args)
	if !ok {
		a.printOptions("Users:", a.snapshotOpts(&a.userOpts))
		a.printOptions("Books:", a.snapshotOpts(&a.issueOpts))
		userID = a.readID("Select user ID")
		bookID = a.readID("Select book ID")
	}
	return a.coord.Issue(ctx, userID, bookID)
}

func (a *App) returnCmd(ctx context.Context, args []string) error {
	txID, bookID, ok := twoArgIDs(args)
	if !ok {
		a.printOptions("Books:", a.snapshotOpts(&a.returnOpts))
		txID = a.readID("Transaction ID")
		bookID = a.readID("Select book ID")
	}
	return a.coord.Return(ctx, txID, bookID)
}

func (a *App) addUserCmd(ctx context.Context, _ []string) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	return a.coord.AddUser(ctx, username, string(password))
}

func (a *App) addBookCmd(ctx context.Context, _ []string) error {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	author, err := GetSimpleText(a.reader, "Enter author", a.out)
	if err != nil {
		return err
	}
	copies, err := GetInt(a.reader, "Available copies", a.out)
	if err != nil {
		a.notifier.Notify("Please enter a valid number of copies!", notify.SeverityError)
		return err
	}
	return a.coord.AddBook(ctx, title, author, copies)
}

func (a *App) snapshotOpts(field *[]view.Option) []view.Option {
	a.mu.Lock()
	defer a.mu.Unlock()
	return *field
}

func (a *App) printOptions(header string, opts []view.Option) {
	fmt.Fprintln(a.out, header)
	for _, o := range opts {
		marker := " "
		if o.Disabled {
			marker = "x"
		}
		fmt.Fprintf(a.out, " %s[%d] %s\n", marker, o.ID, o.Label)
	}
}

// readID reads a numeric answer leniently: anything unparsable becomes 0 so
// the coordinator's own validation produces the user-facing message.
func (a *App) readID(prompt string) int {
	text, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0
	}
	n, _ := strconv.Atoi(text)
	return n
}

// argID parses the first argument as an ID, 0 when absent or malformed.
func argID(args []string) int {
	if len(args) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(args[0])
	return n
}

// twoArgIDs parses "cmd <a> <b>" forms; ok is false when the arguments are
// missing so the caller can fall back to interactive prompts.
func twoArgIDs(args []string) (int, int, bool) {
	if len(args) < 2 {
		return 0, 0, false
	}
	first, _ := strconv.Atoi(args[0])
	second, _ := strconv.Atoi(args[1])
	return first, second, true
}
