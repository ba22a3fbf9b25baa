package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. Nil Phone/Address in the update map
// to NULL parameters; COALESCE against the existing row gives the merge
// semantics.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `user_id, first_name, last_name, email, phone, street, city, state, zip_code, updated_at`

// Upsert merges the update into the stored profile and returns the result.
func (r *PGRepo) Upsert(ctx context.Context, userID string, u Update, updatedAt time.Time) (Profile, error) {
	const query = `
INSERT INTO user_profiles (user_id, first_name, last_name, email, phone, street, city, state, zip_code, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
  first_name = EXCLUDED.first_name,
  last_name = EXCLUDED.last_name,
  email = EXCLUDED.email,
  phone = COALESCE(EXCLUDED.phone, user_profiles.phone),
  street = COALESCE(EXCLUDED.street, user_profiles.street),
  city = COALESCE(EXCLUDED.city, user_profiles.city),
  state = COALESCE(EXCLUDED.state, user_profiles.state),
  zip_code = COALESCE(EXCLUDED.zip_code, user_profiles.zip_code),
  updated_at = EXCLUDED.updated_at
RETURNING ` + profileColumns

	var street, city, state, zip *string
	if u.Address != nil {
		street, city, state, zip = &u.Address.Street, &u.Address.City, &u.Address.State, &u.Address.ZipCode
	}

	row := r.DB.QueryRowContext(ctx, query,
		userID, u.FirstName, u.LastName, u.Email, u.Phone, street, city, state, zip, updatedAt)
	return scanProfile(row)
}

// GetByID returns the stored profile or ErrNotFound.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM user_profiles
WHERE user_id = $1`

	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

// DeleteByUser removes the profile if present.
func (r *PGRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	var phone, street, city, state, zip sql.NullString
	err := row.Scan(
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&phone,
		&street,
		&city,
		&state,
		&zip,
		&p.UpdatedAt,
	)
	if err != nil {
		return Profile{}, err
	}
	if phone.Valid {
		p.Phone = phone.String
	}
	if street.Valid || city.Valid || state.Valid || zip.Valid {
		p.Address = &Address{
			Street:  street.String,
			City:    city.String,
			State:   state.String,
			ZipCode: zip.String,
		}
	}
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
