package account

import (
	"context"
	"database/sql"
	"fmt"

	"docvault-backend/internal/profiles"
	"docvault-backend/internal/progress"
	"docvault-backend/internal/shared/telemetry"
)

// Service wipes a user's stored data on request.
type Service struct {
	progress progress.Repo
	profiles profiles.Repo
	db       *sql.DB
}

// NewService constructs the account service. db may be nil when running on
// the in-memory repos; with a database both deletes run in one transaction.
func NewService(progressRepo progress.Repo, profileRepo profiles.Repo, db *sql.DB) *Service {
	return &Service{progress: progressRepo, profiles: profileRepo, db: db}
}

// ClearData removes every progress entry and the profile for the user.
// Stored objects are not touched; only the references to them are dropped.
func (s *Service) ClearData(ctx context.Context, userID string) error {
	if s.db != nil {
		if err := s.clearWithTx(ctx, userID); err != nil {
			return err
		}
	} else {
		if err := s.progress.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete progress: %w", err)
		}
		if err := s.profiles.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
	}

	telemetry.Info("account.data_cleared", map[string]any{"user_id": userID})
	return nil
}

func (s *Service) clearWithTx(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
