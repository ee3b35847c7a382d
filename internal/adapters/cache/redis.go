// Package cache provides the Redis-backed verification token store.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventsexpress/internal/domain"
)

// VerificationStore keeps email verification tokens in Redis with a TTL, so
// unconfirmed registrations expire on their own.
type VerificationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVerificationStore(client *redis.Client, ttl time.Duration) *VerificationStore {
	return &VerificationStore{client: client, ttl: ttl}
}

func tokenKey(userID string) string {
	return "verification:" + userID
}

func (s *VerificationStore) SetToken(ctx context.Context, userID, token string) error {
	if err := s.client.Set(ctx, tokenKey(userID), token, s.ttl).Err(); err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	return nil
}

func (s *VerificationStore) GetToken(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, tokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get verification token: %w", err)
	}
	return token, nil
}

func (s *VerificationStore) DeleteToken(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, tokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete verification token: %w", err)
	}
	return nil
}

var _ domain.VerificationCache = (*VerificationStore)(nil)
