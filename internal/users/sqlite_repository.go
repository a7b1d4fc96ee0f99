package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notesum/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES (?, ?)
		 ON CONFLICT(username) DO NOTHING`,
		user.UserName, user.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("failed to insert user[%s]: %w", user.UserName, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to insert user[%s]: %w", user.UserName, err)
	}
	if n == 0 {
		return false, nil
	}

	if id, err := res.LastInsertId(); err == nil {
		user.ID = id
	}
	return true, nil
}

func (r *SQLiteRepository) CountMatching(ctx context.Context, userName, passwordHash string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? AND password_hash = ?`,
		userName, passwordHash).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to look up user[%s]: %w", userName, err)
	}
	return n, nil
}
