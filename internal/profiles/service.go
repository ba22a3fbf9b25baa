package profiles

import (
	"context"
	"time"

	"docvault-backend/internal/shared/telemetry"
)

// Service validates and persists profile updates.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService constructs a profile service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Update validates the patch and merges it into the stored profile. Optional
// groups left out of the request keep their stored values.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (Profile, error) {
	update, err := ValidateUpdate(req)
	if err != nil {
		return Profile{}, err
	}

	profile, err := s.repo.Upsert(ctx, userID, update, s.now())
	if err != nil {
		return Profile{}, err
	}

	telemetry.Info("profiles.updated", map[string]any{
		"has_phone":   update.Phone != nil,
		"has_address": update.Address != nil,
	})
	return profile, nil
}

// Get returns the stored profile or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.repo.GetByID(ctx, userID)
}
