package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pickuphub/server/internal/domain/users"
)

const usersEmailConstraint = "users_email_key"

func (r *UserRepository) Create(ctx context.Context, params users.CreateParams) (users.User, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO users (email, password_hash, name, surname, phone)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password_hash, name, surname, phone, created_at
`, params.Email, params.PasswordHash, params.Name, params.Surname, params.Phone)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err, usersEmailConstraint) {
			return users.User{}, users.ErrEmailTaken
		}
		return users.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (users.User, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, email, password_hash, name, surname, phone, created_at
  FROM users
 WHERE email = $1
`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (users.User, error) {
	var user users.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Surname,
		&user.Phone,
		&user.CreatedAt,
	)
	return user, err
}
