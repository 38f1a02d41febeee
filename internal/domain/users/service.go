package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/pickuphub/server/internal/auth"
	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Surname  string
	Phone    *string
}

// Register hashes the password and persists a new user. The plaintext
// password is never stored or logged.
func (s *Service) Register(ctx context.Context, params RegisterParams) (User, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}

	user, err := s.repo.Create(ctx, CreateParams{
		Email:        params.Email,
		PasswordHash: hash,
		Name:         params.Name,
		Surname:      params.Surname,
		Phone:        params.Phone,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies credentials by exact email match. Unknown email and wrong
// password both surface as ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("login: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
