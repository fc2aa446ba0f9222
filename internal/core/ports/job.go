package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
)

// Job sort vocabulary. SortBy is a closed enumeration, never a raw column
// passthrough; unrecognised values fall back to SortByDate.
const (
	SortByDate      = "date"      // createdAt desc (default)
	SortBySalary    = "salary"    // salary desc
	SortByCompany   = "company"   // related company name asc
	SortByRelevance = "relevance" // alias for the default ordering
)

// JobFilter is the compiled predicate bag for job listings. All conditions
// are AND-ed; SearchTerm expands to a case-insensitive contains OR-ed across
// title, location, and description. When IsActive is nil the listing is
// implicitly scoped to active jobs only.
type JobFilter struct {
	SearchTerm string
	Title      string
	Location   string
	Type       string
	Salary     *float64
	MinSalary  *float64
	MaxSalary  *float64
	Skills     []string   // non-empty intersection with the job's skill set
	IsActive   *bool
	CompanyID  *uuid.UUID // relational filter: jobs whose company has this id
	SortBy     string
}

// MyJobsFilter narrows an employer's own job listing.
type MyJobsFilter struct {
	SearchTerm string
	Type       string
	IsActive   *bool
}

// JobInput carries all data needed to create a posting.
type JobInput struct {
	Title       string
	Description string
	Location    string
	Salary      *float64
	Type        string
	CompanyID   uuid.UUID
	Skills      []string
	ExpiresAt   *time.Time
}

// JobUpdate is a partial update; nil fields are left untouched.
type JobUpdate struct {
	Title       *string
	Description *string
	Location    *string
	Salary      *float64
	Type        *string
	Skills      []string
	ExpiresAt   *time.Time
	IsActive    *bool
}

// JobService defines use-case operations for job postings. Every mutation is
// gated on a company membership row for the job's company.
type JobService interface {
	List(ctx context.Context, filter JobFilter, opts pagination.Options) ([]domain.Job, pagination.Meta, error)
	// Search matches a keyword against job title, location, and company name,
	// over active jobs only.
	Search(ctx context.Context, keyword, sortBy string, opts pagination.Options) ([]domain.Job, pagination.Meta, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	MyJobs(ctx context.Context, userID uuid.UUID, filter MyJobsFilter, opts pagination.Options) ([]domain.Job, pagination.Meta, error)
	Create(ctx context.Context, userID uuid.UUID, input JobInput) (*domain.Job, error)
	Update(ctx context.Context, userID, jobID uuid.UUID, input JobUpdate) (*domain.Job, error)
	SetActive(ctx context.Context, userID, jobID uuid.UUID, active bool) (*domain.Job, error)
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
}

// JobRepository defines persistence operations for jobs. The count used for
// pagination metadata is taken under the same predicate as the page query.
type JobRepository interface {
	List(ctx context.Context, filter JobFilter, p pagination.Params) ([]domain.Job, int64, error)
	Search(ctx context.Context, keyword, sortBy string, p pagination.Params) ([]domain.Job, int64, error)
	ListByCompanies(ctx context.Context, companyIDs []uuid.UUID, filter MyJobsFilter, p pagination.Params) ([]domain.Job, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	// FindActiveByID returns domain.ErrJobNotFound for missing or inactive jobs.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	Create(ctx context.Context, j *domain.Job) error
	Update(ctx context.Context, j *domain.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}
