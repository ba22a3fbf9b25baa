package profiles

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory profile store for development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewMemoryRepo constructs an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

// Upsert merges the update into the stored profile.
func (r *MemoryRepo) Upsert(_ context.Context, userID string, u Update, updatedAt time.Time) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.profiles[userID]
	p.UserID = userID
	p.FirstName = u.FirstName
	p.LastName = u.LastName
	p.Email = u.Email
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Address != nil {
		addr := *u.Address
		p.Address = &addr
	}
	p.UpdatedAt = updatedAt

	r.profiles[userID] = p
	return copyProfile(p), nil
}

// GetByID returns the stored profile or ErrNotFound.
func (r *MemoryRepo) GetByID(_ context.Context, userID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return copyProfile(p), nil
}

// DeleteByUser removes the profile if present.
func (r *MemoryRepo) DeleteByUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

func copyProfile(p Profile) Profile {
	if p.Address != nil {
		addr := *p.Address
		p.Address = &addr
	}
	return p
}

var _ Repo = (*MemoryRepo)(nil)
