package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/database"
	"coparent/internal/model"
	"coparent/internal/repository"
)

// BabysitterPostgres is a PostgreSQL implementation of repository.BabysitterRepository.
type BabysitterPostgres struct {
	db *sql.DB
}

func NewBabysitterPostgres(db *sql.DB) *BabysitterPostgres {
	return &BabysitterPostgres{db: db}
}

var _ repository.BabysitterRepository = (*BabysitterPostgres)(nil)

const babysitterColumns = `b.id, f.family_id, b.first_name, b.last_name, b.phone_number, b.rate, b.notes, b.created_by_user_id, b.created_at`

func scanBabysitter(row rowScanner) (*model.Babysitter, error) {
	var b model.Babysitter
	if err := row.Scan(
		&b.ID,
		&b.FamilyID,
		&b.FirstName,
		&b.LastName,
		&b.PhoneNumber,
		&b.Rate,
		&b.Notes,
		&b.CreatedBy,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BabysitterPostgres) List(ctx context.Context, familyID string) ([]model.Babysitter, error) {
	q := `SELECT ` + babysitterColumns + `
		FROM babysitters b JOIN babysitter_families f ON f.babysitter_id = b.id
		WHERE f.family_id = $1
		ORDER BY b.first_name, b.last_name`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Babysitter, 0)
	for rows.Next() {
		b, err := scanBabysitter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

func (r *BabysitterPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.Babysitter, error) {
	q := `SELECT ` + babysitterColumns + `
		FROM babysitters b JOIN babysitter_families f ON f.babysitter_id = b.id
		WHERE b.id = $1 AND f.family_id = $2`
	b, err := scanBabysitter(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

func (r *BabysitterPostgres) Create(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error) {
	var id int64
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		const insert = `
			INSERT INTO babysitters (first_name, last_name, phone_number, rate, notes, created_by_user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`
		if err := tx.QueryRowContext(ctx, insert,
			b.FirstName, b.LastName, b.PhoneNumber, b.Rate, b.Notes, b.CreatedBy,
		).Scan(&id); err != nil {
			return translate(err)
		}

		const link = `INSERT INTO babysitter_families (babysitter_id, family_id, added_by_user_id) VALUES ($1, $2, $3)`
		if _, err := tx.ExecContext(ctx, link, id, b.FamilyID, b.CreatedBy); err != nil {
			return translate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, b.FamilyID, id)
}

func (r *BabysitterPostgres) Update(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error) {
	q := `
		UPDATE babysitters b
		SET first_name = $3, last_name = $4, phone_number = $5, rate = $6, notes = $7
		FROM babysitter_families f
		WHERE b.id = $1 AND f.babysitter_id = b.id AND f.family_id = $2
		RETURNING ` + babysitterColumns
	out, err := scanBabysitter(r.db.QueryRowContext(ctx, q,
		b.ID, b.FamilyID, b.FirstName, b.LastName, b.PhoneNumber, b.Rate, b.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *BabysitterPostgres) Unlink(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM babysitter_families WHERE babysitter_id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
