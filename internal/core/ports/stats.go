package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// UserStats is the job seeker dashboard view.
type UserStats struct {
	Total        int64                `json:"total"`
	Pending      int64                `json:"pending"`
	Interviewing int64                `json:"interviewing"`
	Offered      int64                `json:"offered"`
	Rejected     int64                `json:"rejected"`
	Hired        int64                `json:"hired"`
	Recent       []domain.Application `json:"recent"`
}

// EmployerStats is the employer dashboard view, scoped to jobs owned by any
// company the employer belongs to.
type EmployerStats struct {
	TotalJobs           int64                `json:"totalJobs"`
	ActiveJobs          int64                `json:"activeJobs"`
	TotalApplications   int64                `json:"totalApplications"`
	PendingApplications int64                `json:"pendingApplications"`
	Recent              []domain.Application `json:"recent"`
}

// AdminStats is the admin-wide dashboard view.
type AdminStats struct {
	TotalUsers          int64                `json:"totalUsers"`
	TotalCompanies      int64                `json:"totalCompanies"`
	TotalJobs           int64                `json:"totalJobs"`
	ActiveJobs          int64                `json:"activeJobs"`
	TotalApplications   int64                `json:"totalApplications"`
	PendingApplications int64                `json:"pendingApplications"`
	RecentUsers         []domain.User        `json:"recentUsers"`
	RecentJobs          []domain.Job         `json:"recentJobs"`
	RecentApplications  []domain.Application `json:"recentApplications"`
}

// MonthlyCount is one histogram bucket. The histogram always has exactly 12
// entries, January through December, zero-filled.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// StatsService assembles the aggregation views. Each view issues its
// sub-queries concurrently; a failure in any one fails the whole view.
type StatsService interface {
	UserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error)
	EmployerStats(ctx context.Context, employerID uuid.UUID) (*EmployerStats, error)
	// MonthlyApplications buckets the user's applications by calendar month
	// of the current wall-clock year.
	MonthlyApplications(ctx context.Context, userID uuid.UUID) ([]MonthlyCount, error)
	AdminStats(ctx context.Context) (*AdminStats, error)
}

// StatsRepository provides the individual count and list queries the views
// are assembled from. An empty status means "all statuses"; an empty
// companyIDs slice matches nothing.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCompanies(ctx context.Context) (int64, error)
	CountJobs(ctx context.Context, activeOnly bool) (int64, error)
	CountJobsByCompanies(ctx context.Context, companyIDs []uuid.UUID, activeOnly bool) (int64, error)
	CountApplications(ctx context.Context, status domain.ApplicationStatus) (int64, error)
	CountApplicationsByUser(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus) (int64, error)
	CountApplicationsByCompanies(ctx context.Context, companyIDs []uuid.UUID, status domain.ApplicationStatus) (int64, error)
	RecentApplicationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Application, error)
	RecentApplicationsByCompanies(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]domain.Application, error)
	RecentApplications(ctx context.Context, limit int) ([]domain.Application, error)
	RecentUsers(ctx context.Context, limit int) ([]domain.User, error)
	RecentJobs(ctx context.Context, limit int) ([]domain.Job, error)
	// ApplicationsPerMonth groups the user's applications of the given year
	// by calendar month (1-12).
	ApplicationsPerMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]int64, error)
}
