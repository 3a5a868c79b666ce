package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a token is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store maps opaque session tokens to user ids with an expiry. It replaces
// framework-managed session state: handlers receive it as an explicit
// dependency.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken(32)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, keyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session token: %w", err)
	}

	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	userIDStr, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to look up session token: %w", err)
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID in session: %w", err)
	}

	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
