// Package common defines sentinel errors shared by the notesum packages.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session-level errors.
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrAlreadyLoggedIn = errors.New("already logged in")

	// Input validation errors raised by the UI layer before calling a service.
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	ErrMissingArgument  = errors.New("missing argument")

	// Workflow errors.
	ErrNothingToSummarize = errors.New("nothing to summarize")
)
