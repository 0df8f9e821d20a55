package store

import (
	"context"
	"encoding/json"
	"sync"

	"kame_butler/internal/model"
)

// MemoryProfileStore is an in-memory implementation of ProfileStorage for testing
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

// NewMemoryProfileStore creates a new MemoryProfileStore
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string][]byte),
	}
}

// Get returns the stored profile, or a defaulted profile for unknown users.
// JSON経由のディープコピーを返すので、呼び出し側の変更はPutするまで反映されない。
func (s *MemoryProfileStore) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	s.mu.RLock()
	data, exists := s.profiles[userID]
	s.mu.RUnlock()

	if !exists {
		return model.NewUserProfile(userID), nil
	}

	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}

	profile.UserID = userID
	profile.ApplyDefaults()
	return &profile, nil
}

// Put overwrites the stored profile
func (s *MemoryProfileStore) Put(ctx context.Context, userID string, profile *model.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.profiles[userID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the stored profile
func (s *MemoryProfileStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	delete(s.profiles, userID)
	s.mu.Unlock()
	return nil
}

// Close cleans up resources
func (s *MemoryProfileStore) Close() error {
	return nil
}
