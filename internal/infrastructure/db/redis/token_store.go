package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nfahajan/job-board-backend/internal/core/domain"
)

// TokenStore persists refresh-token identifiers in Redis.
// Key format: refresh:<token_id> -> user id, expiring with the token's TTL,
// so revocation and expiry both reduce to key absence.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Store(ctx context.Context, tokenID string, userID uuid.UUID, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenID), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// Validate returns the user the token was issued to. A missing key means the
// token was revoked or expired.
func (s *TokenStore) Validate(ctx context.Context, tokenID string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domain.ErrInvalidToken
		}
		return uuid.Nil, fmt.Errorf("validate refresh token: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}

func (s *TokenStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, s.key(tokenID)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(tokenID string) string {
	return "refresh:" + tokenID
}
