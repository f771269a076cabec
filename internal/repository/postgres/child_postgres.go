package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// ChildPostgres is a PostgreSQL implementation of repository.ChildRepository.
type ChildPostgres struct {
	db *sql.DB
}

func NewChildPostgres(db *sql.DB) *ChildPostgres {
	return &ChildPostgres{db: db}
}

var _ repository.ChildRepository = (*ChildPostgres)(nil)

const childColumns = `id, family_id, first_name, last_name, dob, created_at`

func scanChild(row rowScanner) (*model.Child, error) {
	var c model.Child
	if err := row.Scan(&c.ID, &c.FamilyID, &c.FirstName, &c.LastName, &c.DateOfBirth, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ChildPostgres) List(ctx context.Context, familyID string) ([]model.Child, error) {
	q := `SELECT ` + childColumns + ` FROM children WHERE family_id = $1 ORDER BY dob ASC, first_name ASC`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Child, 0)
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *ChildPostgres) Create(ctx context.Context, c *model.Child) (*model.Child, error) {
	q := `
		INSERT INTO children (family_id, first_name, last_name, dob)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + childColumns
	out, err := scanChild(r.db.QueryRowContext(ctx, q, c.FamilyID, c.FirstName, c.LastName, c.DateOfBirth))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ChildPostgres) Update(ctx context.Context, c *model.Child) (*model.Child, error) {
	q := `
		UPDATE children SET first_name = $3, last_name = $4, dob = $5
		WHERE id = $1 AND family_id = $2
		RETURNING ` + childColumns
	out, err := scanChild(r.db.QueryRowContext(ctx, q, c.ID, c.FamilyID, c.FirstName, c.LastName, c.DateOfBirth))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ChildPostgres) Delete(ctx context.Context, familyID, id string) error {
	const q = `DELETE FROM children WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
