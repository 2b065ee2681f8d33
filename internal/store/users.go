package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a user. A taken username or email yields ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, token string) (User, error) {
	return queryOne[User](ctx, s.pool,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @token)
		 RETURNING *`,
		pgx.NamedArgs{"username": username, "email": email, "password": passwordHash, "token": token})
}

func (s *Store) UserByUsername(ctx context.Context, username string) (User, error) {
	return queryOne[User](ctx, s.pool,
		"SELECT * FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
}

func (s *Store) UserByID(ctx context.Context, id int) (User, error) {
	return queryOne[User](ctx, s.pool,
		"SELECT * FROM users WHERE id = @id",
		pgx.NamedArgs{"id": id})
}

// UserIDByToken resolves a bearer token to its user.
func (s *Store) UserIDByToken(ctx context.Context, token string) (int, error) {
	var userID int
	err := s.pool.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&userID)
	if err != nil {
		return 0, translate(err)
	}
	return userID, nil
}

// RotateToken replaces the user's auth token, invalidating the old one.
func (s *Store) RotateToken(ctx context.Context, userID int, token string) error {
	result, err := s.pool.Exec(ctx,
		"UPDATE users SET auth_token = @token WHERE id = @id",
		pgx.NamedArgs{"token": token, "id": userID})
	if err != nil {
		return translate(err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
