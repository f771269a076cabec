package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// EmergencyContactPostgres is a PostgreSQL implementation of repository.EmergencyContactRepository.
type EmergencyContactPostgres struct {
	db *sql.DB
}

func NewEmergencyContactPostgres(db *sql.DB) *EmergencyContactPostgres {
	return &EmergencyContactPostgres{db: db}
}

var _ repository.EmergencyContactRepository = (*EmergencyContactPostgres)(nil)

const emergencyContactColumns = `id, family_id, first_name, last_name, phone_number, relationship, notes, created_by_user_id, created_at`

func scanEmergencyContact(row rowScanner) (*model.EmergencyContact, error) {
	var c model.EmergencyContact
	if err := row.Scan(
		&c.ID,
		&c.FamilyID,
		&c.FirstName,
		&c.LastName,
		&c.PhoneNumber,
		&c.Relationship,
		&c.Notes,
		&c.CreatedBy,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *EmergencyContactPostgres) List(ctx context.Context, familyID string) ([]model.EmergencyContact, error) {
	q := `SELECT ` + emergencyContactColumns + ` FROM emergency_contacts WHERE family_id = $1 ORDER BY first_name, last_name`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.EmergencyContact, 0)
	for rows.Next() {
		c, err := scanEmergencyContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

func (r *EmergencyContactPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.EmergencyContact, error) {
	q := `SELECT ` + emergencyContactColumns + ` FROM emergency_contacts WHERE id = $1 AND family_id = $2`
	c, err := scanEmergencyContact(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *EmergencyContactPostgres) Create(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error) {
	q := `
		INSERT INTO emergency_contacts (family_id, first_name, last_name, phone_number, relationship, notes, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + emergencyContactColumns
	out, err := scanEmergencyContact(r.db.QueryRowContext(ctx, q,
		c.FamilyID, c.FirstName, c.LastName, c.PhoneNumber, c.Relationship, c.Notes, c.CreatedBy,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *EmergencyContactPostgres) Update(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error) {
	q := `
		UPDATE emergency_contacts
		SET first_name = $3, last_name = $4, phone_number = $5, relationship = $6, notes = $7
		WHERE id = $1 AND family_id = $2
		RETURNING ` + emergencyContactColumns
	out, err := scanEmergencyContact(r.db.QueryRowContext(ctx, q,
		c.ID, c.FamilyID, c.FirstName, c.LastName, c.PhoneNumber, c.Relationship, c.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *EmergencyContactPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM emergency_contacts WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
