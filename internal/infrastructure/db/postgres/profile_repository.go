package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// ProfileRepository implements ports.ProfileRepository.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		// The unique index on user_id catches a concurrent first write.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
