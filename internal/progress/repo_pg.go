package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. The merge semantics of Apply map to
// partial upserts: each patch kind updates only the columns it names.
type PGRepo struct {
	DB *sql.DB
}

const progressReturning = `
RETURNING document_type_id, status, request_type, estimated_time, front_key, back_key, additional_keys, updated_at`

// Apply upserts the entry for (userID, documentTypeID) per the patch kind.
func (r *PGRepo) Apply(ctx context.Context, userID, documentTypeID string, p Patch, updatedAt time.Time) (Entry, error) {
	switch patch := p.(type) {
	case UploadPatch:
		return r.applyUpload(ctx, userID, documentTypeID, patch, updatedAt)
	case ReplacementPatch:
		return r.applyReplacement(ctx, userID, documentTypeID, patch, updatedAt)
	default:
		return Entry{}, fmt.Errorf("unknown progress patch type %T", p)
	}
}

func (r *PGRepo) applyUpload(ctx context.Context, userID, documentTypeID string, patch UploadPatch, updatedAt time.Time) (Entry, error) {
	var query string
	switch patch.Side {
	case SideFront:
		query = `
INSERT INTO document_progress (user_id, document_type_id, status, request_type, front_key, additional_keys, updated_at)
VALUES ($1, $2, 'completed', 'upload', $3, '[]'::jsonb, $4)
ON CONFLICT (user_id, document_type_id) DO UPDATE SET
  status = EXCLUDED.status,
  request_type = EXCLUDED.request_type,
  front_key = EXCLUDED.front_key,
  updated_at = EXCLUDED.updated_at` + progressReturning
	case SideBack:
		query = `
INSERT INTO document_progress (user_id, document_type_id, status, request_type, back_key, additional_keys, updated_at)
VALUES ($1, $2, 'completed', 'upload', $3, '[]'::jsonb, $4)
ON CONFLICT (user_id, document_type_id) DO UPDATE SET
  status = EXCLUDED.status,
  request_type = EXCLUDED.request_type,
  back_key = EXCLUDED.back_key,
  updated_at = EXCLUDED.updated_at` + progressReturning
	case SideAdditional:
		query = `
INSERT INTO document_progress (user_id, document_type_id, status, request_type, additional_keys, updated_at)
VALUES ($1, $2, 'completed', 'upload', jsonb_build_array($3::text), $4)
ON CONFLICT (user_id, document_type_id) DO UPDATE SET
  status = EXCLUDED.status,
  request_type = EXCLUDED.request_type,
  additional_keys = document_progress.additional_keys || EXCLUDED.additional_keys,
  updated_at = EXCLUDED.updated_at` + progressReturning
	default:
		return Entry{}, fmt.Errorf("invalid upload side %q", patch.Side)
	}

	row := r.DB.QueryRowContext(ctx, query, userID, documentTypeID, patch.StorageKey, updatedAt)
	return scanEntry(row)
}

func (r *PGRepo) applyReplacement(ctx context.Context, userID, documentTypeID string, patch ReplacementPatch, updatedAt time.Time) (Entry, error) {
	const query = `
INSERT INTO document_progress (user_id, document_type_id, status, request_type, estimated_time, additional_keys, updated_at)
VALUES ($1, $2, 'in_progress', 'request_replacement', $3, '[]'::jsonb, $4)
ON CONFLICT (user_id, document_type_id) DO UPDATE SET
  status = EXCLUDED.status,
  request_type = EXCLUDED.request_type,
  estimated_time = EXCLUDED.estimated_time,
  updated_at = EXCLUDED.updated_at` + progressReturning

	row := r.DB.QueryRowContext(ctx, query, userID, documentTypeID, patch.EstimatedTime, updatedAt)
	return scanEntry(row)
}

// GetByUser returns every entry for a user keyed by document type ID.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (map[string]Entry, error) {
	const query = `
SELECT document_type_id, status, request_type, estimated_time, front_key, back_key, additional_keys, updated_at
FROM document_progress
WHERE user_id = $1`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Entry)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out[entry.DocumentTypeID] = entry
	}
	return out, rows.Err()
}

// DeleteByUser removes all entries for a user.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM document_progress WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var estimatedTime sql.NullString
	var frontKey sql.NullString
	var backKey sql.NullString
	var additionalKeys []byte
	err := row.Scan(
		&entry.DocumentTypeID,
		&entry.Status,
		&entry.RequestType,
		&estimatedTime,
		&frontKey,
		&backKey,
		&additionalKeys,
		&entry.UpdatedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	if estimatedTime.Valid {
		entry.EstimatedTime = estimatedTime.String
	}
	if frontKey.Valid {
		entry.FrontKey = frontKey.String
	}
	if backKey.Valid {
		entry.BackKey = backKey.String
	}
	if len(additionalKeys) > 0 {
		if err := json.Unmarshal(additionalKeys, &entry.AdditionalKeys); err != nil {
			return Entry{}, fmt.Errorf("decode additional_keys: %w", err)
		}
	}
	return entry, nil
}

var _ Repo = (*PGRepo)(nil)
