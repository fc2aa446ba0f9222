package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// ApplicationService enforces the application lifecycle invariants across
// jobs, resumes, and company memberships.
type ApplicationService struct {
	applications ports.ApplicationRepository
	jobs         ports.JobRepository
	resumes      ports.ResumeRepository
	companies    ports.CompanyRepository
	logger       zerolog.Logger
}

func NewApplicationService(
	applications ports.ApplicationRepository,
	jobs ports.JobRepository,
	resumes ports.ResumeRepository,
	companies ports.CompanyRepository,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		jobs:         jobs,
		resumes:      resumes,
		companies:    companies,
		logger:       logger,
	}
}

// Apply submits an application. The checks run in a fixed order so error
// responses are deterministic: an inactive job is NOT_FOUND, someone else's
// resume is FORBIDDEN, a repeat application is CONFLICT.
func (s *ApplicationService) Apply(ctx context.Context, userID uuid.UUID, input ports.ApplyInput) (*domain.Application, error) {
	if _, err := s.jobs.FindActiveByID(ctx, input.JobID); err != nil {
		return nil, err
	}

	if _, err := s.resumes.FindOwned(ctx, userID, input.ResumeID); err != nil {
		if errors.Is(err, domain.ErrResumeNotFound) {
			return nil, domain.ErrResumeNotOwned
		}
		return nil, err
	}

	existing, err := s.applications.FindByUserAndJob(ctx, userID, input.JobID)
	if err != nil && !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateApplication
	}

	application := &domain.Application{
		JobID:       input.JobID,
		UserID:      userID,
		ResumeID:    input.ResumeID,
		CoverLetter: input.CoverLetter,
		Status:      domain.StatusPending,
		AppliedAt:   time.Now().UTC(),
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("application_id", application.ID.String()).
		Str("job_id", input.JobID.String()).
		Str("user_id", userID.String()).
		Msg("application submitted")

	return application, nil
}

// MyApplications lists the caller's applications, newest first, optionally
// filtered by status. ACCEPTED is accepted as a legacy alias for HIRED.
func (s *ApplicationService) MyApplications(ctx context.Context, userID uuid.UUID, status string, opts pagination.Options) ([]domain.Application, pagination.Meta, error) {
	var filter domain.ApplicationStatus
	if status != "" {
		filter = domain.NormalizeStatusFilter(status)
	}
	p := pagination.Normalize(opts, pagination.DefaultLimit)
	items, total, err := s.applications.ListByUser(ctx, userID, filter, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(p, total), nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return s.applications.FindByID(ctx, id)
}

// JobApplications lists a job's applications for an employer. The membership
// check runs first and fails closed: a caller without rights receives
// FORBIDDEN, never an empty list, so "no access" cannot be mistaken for
// "no data". Oldest first.
func (s *ApplicationService) JobApplications(ctx context.Context, employerID, jobID uuid.UUID) ([]domain.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ok, err := s.companies.IsMember(ctx, employerID, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCompanyMember
	}
	return s.applications.ListByJob(ctx, jobID)
}

// EmployerApplications lists applications across every job owned by any
// company the employer belongs to, newest first.
func (s *ApplicationService) EmployerApplications(ctx context.Context, employerID uuid.UUID) ([]domain.Application, error) {
	companyIDs, err := s.companies.MemberCompanyIDs(ctx, employerID)
	if err != nil {
		return nil, err
	}
	return s.applications.ListByCompanies(ctx, companyIDs)
}

// UpdateStatus sets an application's status. Transitions are deliberately
// unconstrained, but the caller must hold a membership row for the
// application's job.
func (s *ApplicationService) UpdateStatus(ctx context.Context, callerID, id uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, application.JobID)
	if err != nil {
		return nil, err
	}
	ok, err := s.companies.IsMember(ctx, callerID, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCompanyMember
	}

	return s.applications.UpdateStatus(ctx, id, status)
}

// Delete withdraws an application. Allowed for the applicant, a member of
// the job's company, or an admin.
func (s *ApplicationService) Delete(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) error {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return err
	}

	allowed := callerRole == domain.RoleAdmin || application.UserID == callerID
	if !allowed {
		job, err := s.jobs.FindByID(ctx, application.JobID)
		if err != nil {
			return err
		}
		allowed, err = s.companies.IsMember(ctx, callerID, job.CompanyID)
		if err != nil {
			return err
		}
	}
	if !allowed {
		return domain.ErrForbidden
	}

	if err := s.applications.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("application_id", id.String()).Msg("application deleted")
	return nil
}
