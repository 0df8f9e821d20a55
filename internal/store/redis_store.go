package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kame_butler/internal/model"
)

const DefaultRedisPrefix = "kame_butler:profiles"

// RedisProfileStore implements ProfileStorage backed by Redis.
// 1ユーザー = 1キーのJSON値として保存する。
type RedisProfileStore struct {
	client *redis.Client
	prefix string
}

// NewRedisProfileStore creates a new RedisProfileStore
func NewRedisProfileStore(url, prefix string) (*RedisProfileStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisProfileStore{
		client: client,
		prefix: prefix,
	}, nil
}

func (s *RedisProfileStore) key(userID string) string {
	return fmt.Sprintf("%s:%s", s.prefix, userID)
}

// Get returns the stored profile, or a defaulted profile for unknown users
func (s *RedisProfileStore) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Result()
	if err == redis.Nil {
		return model.NewUserProfile(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", userID, err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile for %s: %w", userID, err)
	}

	profile.UserID = userID
	profile.ApplyDefaults()
	return &profile, nil
}

// Put overwrites the stored profile
func (s *RedisProfileStore) Put(ctx context.Context, userID string, profile *model.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile for %s: %w", userID, err)
	}

	if err := s.client.Set(ctx, s.key(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to put profile for %s: %w", userID, err)
	}
	return nil
}

// Delete removes the stored profile
func (s *RedisProfileStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete profile for %s: %w", userID, err)
	}
	return nil
}

// Close cleans up resources
func (s *RedisProfileStore) Close() error {
	return s.client.Close()
}
