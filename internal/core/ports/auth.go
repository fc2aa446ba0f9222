package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// RegisterInput carries all data needed to register an account. The
// role-specific fields are validated at the transport boundary.
type RegisterInput struct {
	Email    string
	Password string
	Role     string

	// Job seeker fields.
	FirstName string
	LastName  string
	Phone     string
	Bio       string
	ResumeURL string

	// Employer fields.
	CompanyName string
	Website     string
	Address     string
}

// NewAccount bundles the rows created atomically during registration.
// All child entities commit together with the user row, or none do.
type NewAccount struct {
	User    *domain.User
	Profile *domain.Profile
	Resume  *domain.Resume
	Company *domain.Company
}

// TokenPair holds a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements registration, login, and refresh-token rotation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// TokenStore persists refresh-token identifiers until expiry or revocation.
type TokenStore interface {
	Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error
	// Validate returns the user a token was issued to, or domain.ErrInvalidToken.
	Validate(ctx context.Context, tokenID string) (uuid.UUID, error)
	Revoke(ctx context.Context, tokenID string) error
}
