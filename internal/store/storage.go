package store

import (
	"context"

	"kame_butler/internal/model"
)

// ProfileStorage defines the interface for user profile storage backends
type ProfileStorage interface {
	// Get returns the profile for a user, lazily creating a defaulted
	// profile when the backend has no record. Never returns a nil profile
	// together with a nil error.
	Get(ctx context.Context, userID string) (*model.UserProfile, error)

	// Put overwrites the stored profile for a user (idempotent)
	Put(ctx context.Context, userID string, profile *model.UserProfile) error

	// Delete removes the stored profile for a user
	Delete(ctx context.Context, userID string) error

	// Close cleans up resources
	Close() error
}
