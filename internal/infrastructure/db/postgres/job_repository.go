package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// JobRepository implements ports.JobRepository. Listing queries compile the
// filter bag into one WHERE clause and take the pagination count under the
// same predicate, so page totals can never drift from the page contents.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// orderClause maps a sort name onto a SQL ORDER BY. The vocabulary is
// closed; unrecognised values fall back to newest-first. Sorting by company
// requires the caller to have joined the companies table.
func orderClause(sortBy string) string {
	switch sortBy {
	case ports.SortBySalary:
		return "jobs.salary DESC NULLS LAST"
	case ports.SortByCompany:
		return "companies.name ASC"
	case ports.SortByDate, ports.SortByRelevance, "":
		return "jobs.created_at DESC"
	default:
		return "jobs.created_at DESC"
	}
}

func applyJobFilter(q *gorm.DB, f ports.JobFilter) *gorm.DB {
	if f.SearchTerm != "" {
		pattern := "%" + f.SearchTerm + "%"
		q = q.Where("jobs.title ILIKE ? OR jobs.location ILIKE ? OR jobs.description ILIKE ?", pattern, pattern, pattern)
	}
	if f.Title != "" {
		q = q.Where("jobs.title = ?", f.Title)
	}
	if f.Location != "" {
		q = q.Where("jobs.location = ?", f.Location)
	}
	if f.Type != "" {
		q = q.Where("jobs.type = ?", f.Type)
	}
	if f.Salary != nil {
		q = q.Where("jobs.salary = ?", *f.Salary)
	}
	if f.MinSalary != nil {
		q = q.Where("jobs.salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("jobs.salary <= ?", *f.MaxSalary)
	}
	if len(f.Skills) > 0 {
		// Overlap: any shared skill matches.
		q = q.Where("jobs.skills && ?", pq.Array(f.Skills))
	}
	if f.IsActive != nil {
		q = q.Where("jobs.is_active = ?", *f.IsActive)
	}
	if f.CompanyID != nil {
		q = q.Where("jobs.company_id = ?", *f.CompanyID)
	}
	return q
}

func (r *JobRepository) List(ctx context.Context, f ports.JobFilter, p pagination.Params) ([]domain.Job, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Job{}).
		Joins("LEFT JOIN companies ON companies.id = jobs.company_id")
	base = applyJobFilter(base, f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	var jobs []domain.Job
	err := base.Session(&gorm.Session{}).
		Preload("Company").
		Order(orderClause(f.SortBy)).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, total, nil
}

// Search matches a keyword against title, location, and the related company
// name, over active jobs only.
func (r *JobRepository) Search(ctx context.Context, keyword, sortBy string, p pagination.Params) ([]domain.Job, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Job{}).
		Joins("LEFT JOIN companies ON companies.id = jobs.company_id").
		Where("jobs.is_active = ?", true)
	if keyword != "" {
		pattern := "%" + keyword + "%"
		base = base.Where("jobs.title ILIKE ? OR jobs.location ILIKE ? OR companies.name ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count job search: %w", err)
	}

	var jobs []domain.Job
	err := base.Session(&gorm.Session{}).
		Preload("Company").
		Order(orderClause(sortBy)).
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *JobRepository) ListByCompanies(ctx context.Context, companyIDs []uuid.UUID, f ports.MyJobsFilter, p pagination.Params) ([]domain.Job, int64, error) {
	if len(companyIDs) == 0 {
		return []domain.Job{}, 0, nil
	}

	base := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("jobs.company_id IN ?", companyIDs)
	if f.SearchTerm != "" {
		pattern := "%" + f.SearchTerm + "%"
		base = base.Where("jobs.title ILIKE ? OR jobs.description ILIKE ? OR jobs.location ILIKE ?", pattern, pattern, pattern)
	}
	if f.Type != "" {
		base = base.Where("jobs.type = ?", f.Type)
	}
	if f.IsActive != nil {
		base = base.Where("jobs.is_active = ?", *f.IsActive)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count my jobs: %w", err)
	}

	var jobs []domain.Job
	err := base.Session(&gorm.Session{}).
		Preload("Company").
		Order("jobs.created_at DESC").
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list my jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).Preload("Company").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// FindActiveByID treats an inactive job exactly like a missing one.
func (r *JobRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find active job: %w", err)
	}
	return &job, nil
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	if err := r.db.WithContext(ctx).Omit("Company", "Applications").Save(j).Error; err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Job{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
