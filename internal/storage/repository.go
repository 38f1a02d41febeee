package storage

import (
	"context"

	"github.com/pickuphub/server/internal/domain/events"
	"github.com/pickuphub/server/internal/domain/users"
)

// Repository groups data access by domain.
type Repository interface {
	Users() users.Repository
	Events() events.Repository

	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
}
