package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

type ProfileService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profiles.FindByUserID(ctx, userID)
}

// Upsert updates the caller's profile, creating it lazily on first write.
// Creation requires first and last name; updates touch only non-nil fields.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, input ports.ProfileInput) (*domain.Profile, error) {
	existing, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	if existing == nil {
		if input.FirstName == nil || input.LastName == nil {
			return nil, domain.ErrProfileIncomplete
		}
		profile := &domain.Profile{
			UserID:       userID,
			FirstName:    *input.FirstName,
			LastName:     *input.LastName,
			ProfileImage: input.ProfileImage,
		}
		if input.Phone != nil {
			profile.Phone = *input.Phone
		}
		if input.Bio != nil {
			profile.Bio = *input.Bio
		}
		if input.Address != nil {
			profile.Address = *input.Address
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, err
		}
		s.logger.Info().Str("user_id", userID.String()).Msg("profile created")
		return profile, nil
	}

	if input.FirstName != nil {
		existing.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		existing.LastName = *input.LastName
	}
	if input.Phone != nil {
		existing.Phone = *input.Phone
	}
	if input.Bio != nil {
		existing.Bio = *input.Bio
	}
	if input.Address != nil {
		existing.Address = *input.Address
	}
	if input.ProfileImage != nil {
		existing.ProfileImage = input.ProfileImage
	}
	if err := s.profiles.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
