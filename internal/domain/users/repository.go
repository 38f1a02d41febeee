package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
