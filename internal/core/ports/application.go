package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
)

// ApplyInput carries all data needed to submit an application.
type ApplyInput struct {
	JobID       uuid.UUID
	ResumeID    uuid.UUID
	CoverLetter *string
}

// ApplicationService enforces the application lifecycle invariants: one
// application per (user, job), job active at application time, resume owned
// by the applicant.
type ApplicationService interface {
	Apply(ctx context.Context, userID uuid.UUID, input ApplyInput) (*domain.Application, error)
	// MyApplications is owner-scoped and newest-first. The status filter
	// accepts the legacy alias ACCEPTED for HIRED.
	MyApplications(ctx context.Context, userID uuid.UUID, status string, opts pagination.Options) ([]domain.Application, pagination.Meta, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	// JobApplications is employer-scoped through company membership; a caller
	// without a membership row for the job's company receives
	// domain.ErrNotCompanyMember, never an empty list. Oldest first.
	JobApplications(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error)
	// EmployerApplications lists applications across every job owned by any
	// company the employer belongs to, newest first.
	EmployerApplications(ctx context.Context, employerID uuid.UUID) ([]domain.Application, error)
	// UpdateStatus requires a membership row for the application's job.
	UpdateStatus(ctx context.Context, callerID, id uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	// Delete requires applicant ownership, company membership, or admin role.
	Delete(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) error
}

// ApplicationRepository defines persistence operations for applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	// FindByID preloads job (with company), user, and resume.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Application, error)
	// ListByUser filters by status when status is non-empty; applied_at desc.
	ListByUser(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus, p pagination.Params) ([]domain.Application, int64, error)
	// ListByJob returns all of a job's applications, applied_at asc.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error)
	// ListByCompanies returns applications to jobs of the given companies,
	// applied_at desc.
	ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
