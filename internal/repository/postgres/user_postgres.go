package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, family_id, first_name, last_name, email, phone_number, sns_endpoint_arn, profile_photo_key, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		u        model.User
		familyID sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&familyID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PhoneNumber,
		&u.SNSEndpointARN,
		&u.ProfilePhotoKey,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	u.FamilyID = nullString(familyID)
	return &u, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserPostgres) ListByFamily(ctx context.Context, familyID string) ([]model.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE family_id = $1 ORDER BY created_at ASC NULLS LAST, id ASC`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

func (r *UserPostgres) UpdateProfile(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		UPDATE users SET first_name = $2, last_name = $3, phone_number = $4
		WHERE id = $1
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q, u.ID, u.FirstName, u.LastName, u.PhoneNumber))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *UserPostgres) SetSNSEndpoint(ctx context.Context, userID, arn string) error {
	const q = `UPDATE users SET sns_endpoint_arn = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, userID, arn)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *UserPostgres) SetProfilePhoto(ctx context.Context, userID, key string) error {
	const q = `UPDATE users SET profile_photo_key = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, userID, key)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
