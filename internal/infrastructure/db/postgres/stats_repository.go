package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// StatsRepository implements ports.StatsRepository with plain count and
// group-by queries. Callers fan these out concurrently; each query runs on
// its own connection and no snapshot is shared.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountCompanies(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count companies: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountJobs(ctx context.Context, activeOnly bool) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Job{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountJobsByCompanies(ctx context.Context, companyIDs []uuid.UUID, activeOnly bool) (int64, error) {
	if len(companyIDs) == 0 {
		return 0, nil
	}
	q := r.db.WithContext(ctx).Model(&domain.Job{}).Where("company_id IN ?", companyIDs)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count company jobs: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountApplications(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountApplicationsByUser(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{}).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count user applications: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) CountApplicationsByCompanies(ctx context.Context, companyIDs []uuid.UUID, status domain.ApplicationStatus) (int64, error) {
	if len(companyIDs) == 0 {
		return 0, nil
	}
	q := r.db.WithContext(ctx).Model(&domain.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id IN ?", companyIDs)
	if status != "" {
		q = q.Where("applications.status = ?", status)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count company applications: %w", err)
	}
	return n, nil
}

func (r *StatsRepository) RecentApplicationsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("recent user applications: %w", err)
	}
	return apps, nil
}

func (r *StatsRepository) RecentApplicationsByCompanies(ctx context.Context, companyIDs []uuid.UUID, limit int) ([]domain.Application, error) {
	if len(companyIDs) == 0 {
		return []domain.Application{}, nil
	}
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.company_id IN ?", companyIDs).
		Preload("Job").
		Preload("User").
		Preload("User.Profile").
		Order("applications.applied_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("recent company applications: %w", err)
	}
	return apps, nil
}

func (r *StatsRepository) RecentApplications(ctx context.Context, limit int) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("User").
		Order("applied_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("recent applications: %w", err)
	}
	return apps, nil
}

func (r *StatsRepository) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	return users, nil
}

func (r *StatsRepository) RecentJobs(ctx context.Context, limit int) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Preload("Company").
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("recent jobs: %w", err)
	}
	return jobs, nil
}

// ApplicationsPerMonth groups one user's applications of the given calendar
// year by month. Months with no applications are absent from the result.
func (r *StatsRepository) ApplicationsPerMonth(ctx context.Context, userID uuid.UUID, year int) (map[int]int64, error) {
	type row struct {
		Month int
		Count int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Select("EXTRACT(MONTH FROM applied_at)::int AS month, COUNT(*) AS count").
		Where("user_id = ? AND EXTRACT(YEAR FROM applied_at) = ?", userID, year).
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("applications per month: %w", err)
	}

	counts := make(map[int]int64, len(rows))
	for _, r := range rows {
		counts[r.Month] = r.Count
	}
	return counts, nil
}
