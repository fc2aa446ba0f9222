package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// ResumeService implements owner-scoped resume management, including the
// single-default invariant.
type ResumeService struct {
	resumes ports.ResumeRepository
	files   ports.FileStore
	logger  zerolog.Logger
}

func NewResumeService(resumes ports.ResumeRepository, files ports.FileStore, logger zerolog.Logger) *ResumeService {
	return &ResumeService{resumes: resumes, files: files, logger: logger}
}

func (s *ResumeService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Resume, error) {
	return s.resumes.ListByUser(ctx, userID)
}

func (s *ResumeService) Get(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	return s.resumes.FindOwned(ctx, userID, resumeID)
}

// Create records an uploaded resume. When IsDefault is set, the repository
// clears the flag on the user's other resumes in the same transaction.
func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, input ports.CreateResumeInput) (*domain.Resume, error) {
	resume := &domain.Resume{
		Title:     input.Title,
		FileURL:   input.FileURL,
		UserID:    userID,
		IsDefault: input.IsDefault,
	}
	if err := s.resumes.Create(ctx, resume); err != nil {
		return nil, err
	}
	s.logger.Info().Str("resume_id", resume.ID.String()).Str("user_id", userID.String()).Msg("resume created")
	return resume, nil
}

func (s *ResumeService) Update(ctx context.Context, userID, resumeID uuid.UUID, input ports.UpdateResumeInput) (*domain.Resume, error) {
	resume, err := s.resumes.FindOwned(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		resume.Title = *input.Title
		if err := s.resumes.Update(ctx, resume); err != nil {
			return nil, err
		}
	}
	if input.IsDefault != nil && *input.IsDefault && !resume.IsDefault {
		if err := s.resumes.SetDefault(ctx, userID, resumeID); err != nil {
			return nil, err
		}
		resume.IsDefault = true
	}
	return resume, nil
}

// SetDefault marks the resume as the user's single default.
func (s *ResumeService) SetDefault(ctx context.Context, userID, resumeID uuid.UUID) (*domain.Resume, error) {
	resume, err := s.resumes.FindOwned(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if err := s.resumes.SetDefault(ctx, userID, resumeID); err != nil {
		return nil, err
	}
	resume.IsDefault = true
	return resume, nil
}

// Delete removes the resume row and its stored file. A file already gone
// from storage does not fail the delete.
func (s *ResumeService) Delete(ctx context.Context, userID, resumeID uuid.UUID) error {
	resume, err := s.resumes.FindOwned(ctx, userID, resumeID)
	if err != nil {
		return err
	}

	if err := s.files.Delete(ctx, resume.FileURL); err != nil {
		s.logger.Warn().Err(err).Str("resume_id", resumeID.String()).Msg("failed to delete resume file")
	}

	if err := s.resumes.Delete(ctx, resumeID); err != nil {
		return err
	}
	s.logger.Info().Str("resume_id", resumeID.String()).Msg("resume deleted")
	return nil
}
