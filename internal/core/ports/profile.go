package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// ProfileInput is the writable shape of a profile. On first write the name
// fields are required; afterwards nil fields are left untouched.
type ProfileInput struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	Bio          *string
	Address      *string
	ProfileImage *string
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// Upsert creates the profile lazily on first write, updates it afterwards.
	Upsert(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.Profile, error)
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// Create returns domain.ErrProfileExists when a concurrent write already
	// inserted a row for the same user.
	Create(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, p *domain.Profile) error
}
