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

// execIface is the command surface the REPL drives. *App satisfies it; tests
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Note(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Dictate(ctx context.Context, path string) error
	Summarize(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Show(ctx context.Context) error
	Clear(ctx context.Context) error
	APIKey(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: note, upload <file>, dictate <audio file>, summarize, " +
		"export <file>, show, clear, apikey, logout, help, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
//	Not logged in:
//	  - help              show available commands
//	  - register          create an account
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - note              type a note (replaces the current one)
//	  - upload <file>     load a document or image
//	  - dictate <audio>   transcribe a recording and append it to the note
//	  - summarize         summarize the current note or image
//	  - export <file>     save the summary as .pdf or text
//	  - show              print the current note and summary
//	  - clear             clear note, image and summary
//	  - apikey            set the Gemini API key
//	  - logout            log out
//	  - exit | quit       leave the program
//
// Errors from handlers are reported and the loop continues. The loop ends on
// EOF or exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("notesum %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "note", "upload", "dictate", "summarize", "export", "show", "clear", "apikey", "logout":
			printlnFn("Please log in first.")
		default:
			printlnFn("Unknown command:", cmd)
		}
		return nil
	}

	switch cmd {
	case "note":
		return a.Note(ctx)
	case "upload":
		return withPath(args, "upload <file>", func(p string) error { return a.Upload(ctx, p) })
	case "dictate":
		return withPath(args, "dictate <audio file>", func(p string) error { return a.Dictate(ctx, p) })
	case "summarize":
		return a.Summarize(ctx)
	case "export":
		return withPath(args, "export <file>", func(p string) error { return a.Export(ctx, p) })
	case "show":
		return a.Show(ctx)
	case "clear":
		return a.Clear(ctx)
	case "apikey":
		return a.APIKey(ctx)
	case "logout":
		return a.Logout(ctx)
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

// withPath runs fn with the command's argument, which may contain spaces.
func withPath(args []string, usage string, fn func(string) error) error {
	if len(args) == 0 {
		printlnFn("Usage:", usage)
		return nil
	}
	return fn(strings.Join(args, " "))
}
