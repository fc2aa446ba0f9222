package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
	"github.com/nfahajan/job-board-backend/internal/core/ports"
)

// AuthConfig carries the token settings injected at startup.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AuthService implements registration, login, and refresh-token rotation.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenStore
	cfg    AuthConfig
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 24 * time.Hour
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	return &AuthService{users: users, tokens: tokens, cfg: cfg, logger: logger}
}

// Register creates the user plus its role-specific side entities in one
// transaction: a job seeker gets a profile (and a default resume when a
// resume URL was supplied), an employer gets a company with an owner
// membership. Partial registrations are never observable.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" || !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := ports.NewAccount{
		User: &domain.User{
			Email:        input.Email,
			PasswordHash: string(hash),
			Role:         input.Role,
		},
	}

	switch input.Role {
	case domain.RoleJobSeeker:
		acc.Profile = &domain.Profile{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Bio:       input.Bio,
		}
		if input.ResumeURL != "" {
			acc.Resume = &domain.Resume{
				Title:     "Default Resume",
				FileURL:   input.ResumeURL,
				IsDefault: true,
			}
		}
	case domain.RoleEmployer:
		company := &domain.Company{Name: input.CompanyName}
		if input.Website != "" {
			company.Website = &input.Website
		}
		if input.Address != "" {
			company.Address = &input.Address
		}
		acc.Company = company
	}

	user, err := s.users.CreateAccount(ctx, acc)
	if err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Str("email", input.Email).Msg("registration failed")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.String()).Str("role", user.Role).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// refresh token's identifier is persisted so it can be rotated and revoked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return pair, user, nil
}

// Refresh validates a refresh token against the token store, revokes it, and
// issues a fresh pair. A revoked or expired token yields ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.RefreshSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, domain.ErrInvalidToken
	}

	userID, err := s.tokens.Validate(ctx, tokenID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	// Rotation: the old token is single-use.
	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to revoke refresh token")
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID.String(),
		"role":  user.Role,
		"email": user.Email,
		"exp":   now.Add(s.cfg.AccessTTL).Unix(),
	})
	accessToken, err := access.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return nil, err
	}

	tokenID := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID.String(),
		"jti": tokenID,
		"exp": now.Add(s.cfg.RefreshTTL).Unix(),
	})
	refreshToken, err := refresh.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, tokenID, user.ID, s.cfg.RefreshTTL); err != nil {
		return nil, err
	}

	return &ports.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
