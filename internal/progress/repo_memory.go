package progress

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Entry // userId -> documentTypeId -> entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Entry),
	}
}

// Apply merges the patch into the stored entry, creating it if absent.
func (r *MemoryRepo) Apply(ctx context.Context, userID, documentTypeID string, p Patch, updatedAt time.Time) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, ok := r.data[userID]
	if !ok {
		entries = make(map[string]Entry)
		r.data[userID] = entries
	}
	entry := apply(entries[documentTypeID], documentTypeID, p, updatedAt)
	entries[documentTypeID] = entry
	return entry, nil
}

// GetByUser returns a copy of the user's entries keyed by document type ID.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (map[string]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Entry, len(r.data[userID]))
	for id, entry := range r.data[userID] {
		entry.AdditionalKeys = append([]string(nil), entry.AdditionalKeys...)
		out[id] = entry
	}
	return out, nil
}

// DeleteByUser removes all entries for a user.
func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
