package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// ResumeRepository implements ports.ResumeRepository. Every write that marks
// a resume as default locks the owner's resume rows and clears the flag on
// the others in the same transaction; a partial unique index on
// (user_id) WHERE is_default backs the invariant at the schema level.
type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db: db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if resume.IsDefault {
			if err := lockUserResumes(tx, resume.UserID); err != nil {
				return err
			}
			err := tx.Model(&domain.Resume{}).
				Where("user_id = ? AND is_default = ?", resume.UserID, true).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(resume).Error
	})
	if err != nil {
		return fmt.Errorf("create resume: %w", err)
	}
	return nil
}

// lockUserResumes takes row locks on all of the user's resumes so concurrent
// clear+set transactions serialize instead of both clearing against stale
// row versions under READ COMMITTED.
func lockUserResumes(tx *gorm.DB, userID uuid.UUID) error {
	var locked []domain.Resume
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Find(&locked).Error
}

// FindOwned scopes the lookup by owner, so a foreign resume reads as missing.
func (r *ResumeRepository) FindOwned(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	var resume domain.Resume
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", resumeID, userID).
		First(&resume).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResumeNotFound
		}
		return nil, fmt.Errorf("find resume: %w", err)
	}
	return &resume, nil
}

func (r *ResumeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	var resumes []domain.Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return resumes, nil
}

func (r *ResumeRepository) Update(ctx context.Context, resume *domain.Resume) error {
	if err := r.db.WithContext(ctx).Save(resume).Error; err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	return nil
}

// SetDefault atomically moves the default flag onto the given resume.
func (r *ResumeRepository) SetDefault(ctx context.Context, userID, resumeID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUserResumes(tx, userID); err != nil {
			return err
		}
		err := tx.Model(&domain.Resume{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error
		if err != nil {
			return err
		}
		res := tx.Model(&domain.Resume{}).
			Where("id = ? AND user_id = ?", resumeID, userID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrResumeNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrResumeNotFound) {
			return err
		}
		return fmt.Errorf("set default resume: %w", err)
	}
	return nil
}

func (r *ResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Resume{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}
