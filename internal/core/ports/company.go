package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
)

// CompanyInput is the writable shape of a company; nil optional fields are
// left untouched on update.
type CompanyInput struct {
	Name        string
	Description *string
	Website     *string
	Address     *string
	Logo        *string
}

// CompanySummary is the directory listing item: the company plus its count
// of currently active jobs.
type CompanySummary struct {
	domain.Company
	ActiveJobs int64 `json:"active_jobs"`
}

type CompanyService interface {
	Directory(ctx context.Context, opts pagination.Options) ([]CompanySummary, pagination.Meta, error)
	// Get returns the company with its active jobs and members preloaded.
	Get(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	// Create makes the caller an owner member of the new company.
	Create(ctx context.Context, userID uuid.UUID, input CompanyInput) (*domain.Company, error)
	// Update is membership-scoped: non-members receive domain.ErrNotCompanyMember.
	Update(ctx context.Context, userID, companyID uuid.UUID, input CompanyInput) (*domain.Company, error)
	// UpdateLogo stores the uploaded logo and replaces the previous object.
	// The membership check runs before anything is written to storage.
	UpdateLogo(ctx context.Context, userID, companyID uuid.UUID, filename string, logo io.Reader) (*domain.Company, error)
}

// CompanyRepository defines persistence for companies and the membership
// join rows that drive authorisation scoping.
type CompanyRepository interface {
	// Create persists the company and the owner membership in one transaction.
	Create(ctx context.Context, c *domain.Company, ownerID uuid.UUID) error
	List(ctx context.Context, p pagination.Params) ([]CompanySummary, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	Update(ctx context.Context, c *domain.Company) error

	// IsMember reports whether a membership row exists for (userID, companyID).
	// Absence of a row means forbidden, never ambiguous.
	IsMember(ctx context.Context, userID, companyID uuid.UUID) (bool, error)
	// MemberCompanyIDs returns the ids of every company the user belongs to.
	MemberCompanyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
