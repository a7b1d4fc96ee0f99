// Package users is the local credential store: a single users table mapping
// a unique username to a password digest, with register and authenticate.
package users

import (
	"context"

	"github.com/dmitrijs2005/notesum/internal/cryptox"
	"github.com/dmitrijs2005/notesum/internal/logging"
)

type Service struct {
	repo Repository
	log  logging.Logger
}

func NewService(repo Repository, log logging.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register stores a new user. It returns false when the username already
// exists; the existing record is left untouched. Validation of empty values
// is the caller's job. Storage faults are returned as errors.
func (s *Service) Register(ctx context.Context, userName, password string) (bool, error) {
	user := &User{
		UserName:     userName,
		PasswordHash: cryptox.HashPassword(password),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return false, err
	}
	if !created {
		s.log.Info(ctx, "registration rejected: username taken", "user", userName)
		return false, nil
	}

	s.log.Info(ctx, "user registered", "user", userName, "id", user.ID)
	return true, nil
}

// Authenticate reports whether exactly one user matches both userName and
// password. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (bool, error) {
	n, err := s.repo.CountMatching(ctx, userName, cryptox.HashPassword(password))
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
