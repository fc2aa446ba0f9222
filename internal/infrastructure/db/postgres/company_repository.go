package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// CompanyRepository implements ports.CompanyRepository.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create persists the company and the creator's owner membership in one
// transaction.
func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company, ownerID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		member := &domain.CompanyMember{
			UserID:    ownerID,
			CompanyID: c.ID,
			Role:      domain.MemberRoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// List returns one directory page with each company's count of active jobs,
// ordered by name. The counts come from a single grouped query over the
// page's ids rather than one query per row.
func (r *CompanyRepository) List(ctx context.Context, p pagination.Params) ([]ports.CompanySummary, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Company{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	var companies []domain.Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Limit(p.Limit).
		Offset(p.Skip).
		Find(&companies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(companies))
	if len(companies) > 0 {
		ids := make([]uuid.UUID, len(companies))
		for i, c := range companies {
			ids[i] = c.ID
		}
		var rows []struct {
			CompanyID uuid.UUID
			Count     int64
		}
		err := r.db.WithContext(ctx).Model(&domain.Job{}).
			Select("company_id, COUNT(*) AS count").
			Where("company_id IN ? AND is_active = ?", ids, true).
			Group("company_id").
			Scan(&rows).Error
		if err != nil {
			return nil, 0, fmt.Errorf("count active jobs: %w", err)
		}
		for _, row := range rows {
			counts[row.CompanyID] = row.Count
		}
	}

	return summarize(companies, counts), total, nil
}

// summarize pairs each company with its active-job count, preserving the
// page's order. Companies without a grouped row count as zero.
func summarize(companies []domain.Company, counts map[uuid.UUID]int64) []ports.CompanySummary {
	summaries := make([]ports.CompanySummary, 0, len(companies))
	for _, c := range companies {
		summaries = append(summaries, ports.CompanySummary{Company: c, ActiveJobs: counts[c.ID]})
	}
	return summaries
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).
		Preload("Jobs", "is_active = ?", true).
		Preload("Members").
		First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &company, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	if err := r.db.WithContext(ctx).Omit("Jobs", "Members").Save(c).Error; err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// IsMember reports whether a membership row exists for (userID, companyID).
func (r *CompanyRepository) IsMember(ctx context.Context, userID, companyID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CompanyMember{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return n > 0, nil
}

func (r *CompanyRepository) MemberCompanyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.CompanyMember{}).
		Where("user_id = ?", userID).
		Pluck("company_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("member company ids: %w", err)
	}
	return ids, nil
}
