package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pickuphub/server/internal/domain/users"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndGetByEmail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool := setupPostgres(t, ctx)

	repo, err := NewRepository(pool)
	require.NoError(t, err)

	phone := "555-0101"
	created, err := repo.Users().Create(ctx, users.CreateParams{
		Email:        "a@x.com",
		PasswordHash: "hash",
		Name:         "Ada",
		Surname:      "Lovelace",
		Phone:        &phone,
	})
	require.NoError(t, err)
	require.Positive(t, created.ID)

	fetched, err := repo.Users().GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Ada", fetched.Name)
	require.NotNil(t, fetched.Phone)
	require.Equal(t, "555-0101", *fetched.Phone)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool := setupPostgres(t, ctx)

	repo, err := NewRepository(pool)
	require.NoError(t, err)

	params := users.CreateParams{
		Email:        "a@x.com",
		PasswordHash: "hash",
		Name:         "Ada",
		Surname:      "Lovelace",
	}

	_, err = repo.Users().Create(ctx, params)
	require.NoError(t, err)

	_, err = repo.Users().Create(ctx, params)
	require.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool := setupPostgres(t, ctx)

	repo, err := NewRepository(pool)
	require.NoError(t, err)

	_, err = repo.Users().GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, users.ErrNotFound)
}
