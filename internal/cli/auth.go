package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notesum/internal/common"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// readCredentials prompts for a username and a password. Both must be
// non-empty.
func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}

	if userName == "" || len(password) == 0 {
		common.WipeByteArray(password)
		return "", nil, common.ErrEmptyCredentials
	}
	return userName, password, nil
}

// Register prompts for credentials and creates the account. A taken
// username is reported to the user, not returned as an error.
func (a *App) Register(ctx context.Context) error {
	if a.session.LoggedIn() {
		return common.ErrAlreadyLoggedIn
	}

	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.users.Register(ctx, userName, string(password))
	if err != nil {
		a.log.Error(ctx, "registration failed", "user", userName, "error", err)
		return fmt.Errorf("registration failed: %w", err)
	}
	if !ok {
		a.println("Registration failed: username already exists.")
		return nil
	}

	a.println("User registered successfully! You can now log in.")
	return nil
}

// Login prompts for credentials and starts a session on success. Wrong
// passwords and unknown users get the same message.
func (a *App) Login(ctx context.Context) error {
	if a.session.LoggedIn() {
		return common.ErrAlreadyLoggedIn
	}

	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.users.Authenticate(ctx, userName, string(password))
	if err != nil {
		a.log.Error(ctx, "login failed", "user", userName, "error", err)
		return fmt.Errorf("login failed: %w", err)
	}
	if !ok {
		a.log.Info(ctx, "login rejected", "user", userName)
		a.println("Invalid username or password.")
		return nil
	}

	a.session.Login(userName)
	a.relog()
	a.log.Info(ctx, "login successful", "user", userName)
	a.println("Welcome, " + userName + "!")
	return nil
}

// Logout ends the session and discards the note, image and summary.
func (a *App) Logout(ctx context.Context) error {
	if !a.session.LoggedIn() {
		return common.ErrNotLoggedIn
	}
	a.log.Info(ctx, "logout", "user", a.session.UserName())
	a.session.Logout()
	a.println("Logged out.")
	return nil
}
