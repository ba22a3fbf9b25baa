package progress

import (
	"context"
	"time"
)

// Repo defines persistence operations for document progress entries.
type Repo interface {
	// Apply merges the patch into the entry for (userID, documentTypeID),
	// creating the entry if absent, and returns the resulting entry.
	Apply(ctx context.Context, userID, documentTypeID string, p Patch, updatedAt time.Time) (Entry, error)
	// GetByUser returns every entry for a user keyed by document type ID.
	GetByUser(ctx context.Context, userID string) (map[string]Entry, error)
	// DeleteByUser removes all entries for a user.
	DeleteByUser(ctx context.Context, userID string) error
}
