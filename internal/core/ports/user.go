package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email *string
	Role  *string
}

// UserService defines account administration operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	// Get returns a user with profile and company memberships preloaded.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// CreateAccount persists the user and all role-specific side entities in
	// one transaction. Returns domain.ErrUserExists on a duplicate email.
	CreateAccount(ctx context.Context, acc NewAccount) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID preloads the profile and company memberships.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
