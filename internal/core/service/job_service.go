package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

type JobService struct {
	jobs      ports.JobRepository
	companies ports.CompanyRepository
	logger    zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, companies ports.CompanyRepository, logger zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, companies: companies, logger: logger}
}

// List returns a filtered, paginated page of jobs. Unless the caller
// explicitly supplied an isActive filter, the listing is scoped to active
// jobs only — omitting this would silently leak inactive postings.
func (s *JobService) List(ctx context.Context, filter ports.JobFilter, opts pagination.Options) ([]domain.Job, pagination.Meta, error) {
	if filter.IsActive == nil {
		active := true
		filter.IsActive = &active
	}
	p := pagination.Normalize(opts, pagination.DefaultLimit)
	jobs, total, err := s.jobs.List(ctx, filter, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, pagination.NewMeta(p, total), nil
}

// Search matches a keyword against title, location, and company name over
// active jobs only.
func (s *JobService) Search(ctx context.Context, keyword, sortBy string, opts pagination.Options) ([]domain.Job, pagination.Meta, error) {
	p := pagination.Normalize(opts, pagination.DefaultLimit)
	jobs, total, err := s.jobs.Search(ctx, keyword, sortBy, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, pagination.NewMeta(p, total), nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

// MyJobs lists jobs across every company the caller belongs to.
func (s *JobService) MyJobs(ctx context.Context, userID uuid.UUID, filter ports.MyJobsFilter, opts pagination.Options) ([]domain.Job, pagination.Meta, error) {
	companyIDs, err := s.companies.MemberCompanyIDs(ctx, userID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	p := pagination.Normalize(opts, pagination.DefaultLimit)
	jobs, total, err := s.jobs.ListByCompanies(ctx, companyIDs, filter, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return jobs, pagination.NewMeta(p, total), nil
}

// Create is gated on a membership row for the target company.
func (s *JobService) Create(ctx context.Context, userID uuid.UUID, input ports.JobInput) (*domain.Job, error) {
	ok, err := s.companies.IsMember(ctx, userID, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCompanyMember
	}

	job := &domain.Job{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
		Type:        input.Type,
		CompanyID:   input.CompanyID,
		Skills:      input.Skills,
		ExpiresAt:   input.ExpiresAt,
		IsActive:    true,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Str("job_id", job.ID.String()).Str("company_id", job.CompanyID.String()).Msg("job created")
	return job, nil
}

// Update mutates a posting; nil fields are left untouched.
func (s *JobService) Update(ctx context.Context, userID, jobID uuid.UUID, input ports.JobUpdate) (*domain.Job, error) {
	job, err := s.requireMemberJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.Skills != nil {
		job.Skills = input.Skills
	}
	if input.ExpiresAt != nil {
		job.ExpiresAt = input.ExpiresAt
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// SetActive toggles a posting's visibility.
func (s *JobService) SetActive(ctx context.Context, userID, jobID uuid.UUID, active bool) (*domain.Job, error) {
	job, err := s.requireMemberJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	job.IsActive = active
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	if _, err := s.requireMemberJob(ctx, userID, jobID); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", jobID.String()).Msg("job deleted")
	return nil
}

// requireMemberJob loads the job and fails closed unless the caller holds a
// membership row for the job's company.
func (s *JobService) requireMemberJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	ok, err := s.companies.IsMember(ctx, userID, job.CompanyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCompanyMember
	}
	return job, nil
}
