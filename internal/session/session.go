// Package session holds the state of one interactive run: who is logged in
// and the note, image and summary being worked on.
package session

import (
	"github.com/google/uuid"

	"github.com/dmitrijs2005/notesum/internal/imageload"
)

type Session struct {
	id       string
	userName string
	note     string
	image    *imageload.Image
	summary  string
}

func New() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) UserName() string { return s.userName }
func (s *Session) LoggedIn() bool   { return s.userName != "" }

// Login starts a fresh workspace for userName under a new session id.
func (s *Session) Login(userName string) {
	s.Clear()
	s.id = uuid.NewString()
	s.userName = userName
}

// Logout forgets the user and everything they were working on.
func (s *Session) Logout() {
	s.Clear()
	s.userName = ""
}

// Clear empties the note, image and summary; the login is kept.
func (s *Session) Clear() {
	s.note = ""
	s.image = nil
	s.summary = ""
}

func (s *Session) Note() string              { return s.note }
func (s *Session) Image() *imageload.Image   { return s.image }
func (s *Session) Summary() string           { return s.summary }
func (s *Session) SetSummary(summary string) { s.summary = summary }

// SetNote replaces the note text, as loading a document does, and drops any
// loaded image.
func (s *Session) SetNote(text string) {
	s.note = text
	s.image = nil
}

// AppendNote adds text after the current note, separated by a blank line,
// and drops any loaded image.
func (s *Session) AppendNote(text string) {
	if s.note == "" {
		s.note = text
	} else {
		s.note += "\n\n" + text
	}
	s.image = nil
}

// SetImage makes img the input and clears the note text.
func (s *Session) SetImage(img *imageload.Image) {
	s.image = img
	s.note = ""
}
