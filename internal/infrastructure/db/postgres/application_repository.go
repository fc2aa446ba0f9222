package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
)

// ApplicationRepository implements ports.ApplicationRepository.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		// The composite unique index on (job_id, user_id) backs up the
		// service-level duplicate check under concurrency.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateApplication
		}
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Company").
		Preload("User").
		Preload("Resume").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByUserAndJob(ctx context.Context, userID, jobID uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application by user and job: %w", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, status domain.ApplicationStatus, p pagination.Params) ([]domain.Application, int64, error) {
	base := r.db.WithContext(ctx).Model(&domain.Application{}).Where("user_id = ?", userID)
	if status != "" {
		base = base.Where("status = ?", status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	var apps []domain.Application
	err := base.Session(&gorm.Session{}).
		Preload("Job").
		Preload("Job.Company").
		Preload("Resume").
		Order("applied_at DESC").
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&apps).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	return apps, total, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Preload("Resume").
		Where("job_id = ?", jobID).
		Order("applied_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) ListByCompanies(ctx context.Context, companyIDs []uuid.UUID) ([]domain.Application, error) {
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
		Preload("Resume").
		Order("applications.applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list company applications: %w", err)
	}
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus) (*domain.Application, error) {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, fmt.Errorf("update application status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrApplicationNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Application{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}
