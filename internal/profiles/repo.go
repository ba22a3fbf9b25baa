package profiles

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no stored profile for the user.
var ErrNotFound = errors.New("profile not found")

// Repo defines persistence operations for user profiles.
type Repo interface {
	// Upsert merges the update into the stored profile, creating it if
	// absent, and returns the resulting profile.
	Upsert(ctx context.Context, userID string, u Update, updatedAt time.Time) (Profile, error)
	// GetByID returns the stored profile or ErrNotFound.
	GetByID(ctx context.Context, userID string) (Profile, error)
	// DeleteByUser removes the profile; deleting an absent profile is a no-op.
	DeleteByUser(ctx context.Context, userID string) error
}
