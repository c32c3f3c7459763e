package repositories

import (
	"context"

	"blueskyvhs/internal/domain/entities"
)

// UserRepository is the credential store: user records plus the
// email->id and token->id lookup indexes.
type UserRepository interface {
	// FindIDByEmail resolves a normalized email through the index.
	// The bool reports whether the email is registered at all.
	FindIDByEmail(ctx context.Context, email string) (int64, bool, error)

	// Create allocates a fresh id and persists the user record together
	// with its email index entry.
	Create(ctx context.Context, email, passwordHash string) (int64, error)

	// BindToken attaches token to the user record and to the token
	// lookup index in one step.
	BindToken(ctx context.Context, id int64, token string) error

	FindByID(ctx context.Context, id int64) (*entities.User, bool, error)
	FindByToken(ctx context.Context, token string) (*entities.User, bool, error)
}
