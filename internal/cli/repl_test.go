package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool                    { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error      { return f.record("register") }
func (f *fakeExec) Note(context.Context) error          { return f.record("note") }
func (f *fakeExec) Summarize(context.Context) error     { return f.record("summarize") }
func (f *fakeExec) Show(context.Context) error          { return f.record("show") }
func (f *fakeExec) Clear(context.Context) error         { return f.record("clear") }
func (f *fakeExec) APIKey(context.Context) error        { return f.record("apikey") }
func (f *fakeExec) Upload(_ context.Context, p string) error {
	return f.record("upload:" + p)
}
func (f *fakeExec) Dictate(_ context.Context, p string) error {
	return f.record("dictate:" + p)
}
func (f *fakeExec) Export(_ context.Context, p string) error {
	return f.record("export:" + p)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrints(t)

	input := "help\nnote\nlogin\nhelp\nnote\nupload /tmp/my notes.docx\ndictate memo.wav\n" +
		"summarize\nexport out.pdf\nshow\nclear\napikey\nfoobar\nlogout\nsummarize\nexit\nnote\n"
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" }, readerOf(input))

	assert.Equal(t, []string{
		"login", "note", "upload:/tmp/my notes.docx", "dictate:memo.wav",
		"summarize", "export:out.pdf", "show", "clear", "apikey", "logout",
	}, exec.calls)
}

func TestRunREPL_LoggedOutCommandsAreRefused(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, readerOf("summarize\nlogout\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Please log in first.\n")
}

func TestRunREPL_UsageWithoutArgument(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, readerOf("upload\nexport\ndictate\nquit\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: upload <file>\n")
	assert.Contains(t, *lines, "Usage: export <file>\n")
	assert.Contains(t, *lines, "Bye!\n")
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true, failWith: errors.New("disk full")}
	runREPL(context.Background(), exec, func() string { return "" }, readerOf("show\nclear"))

	assert.Equal(t, []string{"show", "clear"}, exec.calls)
	assert.Contains(t, *lines, "Error: disk full\n")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrints(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, readerOf("help\n"))
	assert.Contains(t, *lines, helpLoggedOut+"\n")

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, readerOf("help\n"))
	assert.Contains(t, *lines, helpLoggedIn+"\n")
}
