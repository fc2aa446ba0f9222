package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/pagination"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

type CompanyService struct {
	companies ports.CompanyRepository
	files     ports.FileStore
	logger    zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, files ports.FileStore, logger zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, files: files, logger: logger}
}

// Directory lists companies with their active job counts.
func (s *CompanyService) Directory(ctx context.Context, opts pagination.Options) ([]ports.CompanySummary, pagination.Meta, error) {
	p := pagination.Normalize(opts, pagination.DirectoryLimit)
	items, total, err := s.companies.List(ctx, p)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(p, total), nil
}

func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

// Create makes the caller an owner member of the new company in the same
// transaction as the company row.
func (s *CompanyService) Create(ctx context.Context, userID uuid.UUID, input ports.CompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:        input.Name,
		Description: input.Description,
		Website:     input.Website,
		Address:     input.Address,
		Logo:        input.Logo,
	}
	if err := s.companies.Create(ctx, company, userID); err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", company.ID.String()).Str("owner_id", userID.String()).Msg("company created")
	return company, nil
}

// Update is membership-scoped: the caller must hold a membership row for the
// company. Nil optional fields are left untouched.
func (s *CompanyService) Update(ctx context.Context, userID, companyID uuid.UUID, input ports.CompanyInput) (*domain.Company, error) {
	company, err := s.requireMember(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Description != nil {
		company.Description = input.Description
	}
	if input.Website != nil {
		company.Website = input.Website
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.Logo != nil {
		company.Logo = input.Logo
	}

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateLogo stores the uploaded logo and removes the previous object from
// storage. The membership check runs before anything is written, and a saved
// object is removed again when the row update fails. Deleting a missing
// object is a no-op.
func (s *CompanyService) UpdateLogo(ctx context.Context, userID, companyID uuid.UUID, filename string, logo io.Reader) (*domain.Company, error) {
	company, err := s.requireMember(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	logoURL, err := s.files.Save(ctx, "logos", filename, logo)
	if err != nil {
		return nil, err
	}

	old := company.Logo
	company.Logo = &logoURL
	if err := s.companies.Update(ctx, company); err != nil {
		if delErr := s.files.Delete(ctx, logoURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("company_id", companyID.String()).Msg("failed to remove logo after update failure")
		}
		return nil, err
	}

	if old != nil && *old != logoURL {
		if err := s.files.Delete(ctx, *old); err != nil {
			s.logger.Warn().Err(err).Str("company_id", companyID.String()).Msg("failed to delete previous logo")
		}
	}
	return company, nil
}

// requireMember loads the company and fails closed when the caller holds no
// membership row for it.
func (s *CompanyService) requireMember(ctx context.Context, userID, companyID uuid.UUID) (*domain.Company, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	ok, err := s.companies.IsMember(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotCompanyMember
	}
	return company, nil
}
