package users

import "context"

type Repository interface {
	// Create inserts user. It reports false, without error, when the
	// username is already taken.
	Create(ctx context.Context, user *User) (bool, error)
	// CountMatching returns how many rows carry both userName and passwordHash.
	CountMatching(ctx context.Context, userName, passwordHash string) (int, error)
}
