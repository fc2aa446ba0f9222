package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// CreateResumeInput carries the metadata for an uploaded resume. The file
// itself is stored through FileStore before the service is called.
type CreateResumeInput struct {
	Title     string
	FileURL   string
	IsDefault bool
}

// UpdateResumeInput is a partial update; nil fields are left untouched.
type UpdateResumeInput struct {
	Title     *string
	IsDefault *bool
}

// ResumeService defines owner-scoped resume operations. Every operation
// fails closed: a resume that exists but belongs to someone else is
// indistinguishable from one that does not exist.
type ResumeService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error)
	Get(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateResumeInput) (*domain.Resume, error)
	Update(ctx context.Context, userID, resumeID uuid.UUID, input UpdateResumeInput) (*domain.Resume, error)
	SetDefault(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error)
	Delete(ctx context.Context, userID, resumeID uuid.UUID) error
}

// ResumeRepository defines persistence operations for resumes. All writes
// that mark a resume as default clear the flag on the user's other resumes
// inside the same transaction, so at most one default can ever be observed.
type ResumeRepository interface {
	Create(ctx context.Context, r *domain.Resume) error
	// FindOwned returns domain.ErrResumeNotFound unless the resume exists and
	// belongs to userID.
	FindOwned(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error)
	// ListByUser orders default-first, then newest.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error)
	Update(ctx context.Context, r *domain.Resume) error
	SetDefault(ctx context.Context, userID, resumeID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
