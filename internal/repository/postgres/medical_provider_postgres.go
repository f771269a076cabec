package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// MedicalProviderPostgres is a PostgreSQL implementation of repository.MedicalProviderRepository.
type MedicalProviderPostgres struct {
	db *sql.DB
}

func NewMedicalProviderPostgres(db *sql.DB) *MedicalProviderPostgres {
	return &MedicalProviderPostgres{db: db}
}

var _ repository.MedicalProviderRepository = (*MedicalProviderPostgres)(nil)

const medicalProviderColumns = `id, family_id, name, specialty, address, phone, email, website,
	latitude::float8, longitude::float8, zip_code, notes, created_at, updated_at`

var medicalProviderSort = map[string]string{
	"name":       "name",
	"specialty":  "specialty",
	"created_at": "created_at",
}

func scanMedicalProvider(row rowScanner) (*model.MedicalProvider, error) {
	var p model.MedicalProvider
	if err := row.Scan(
		&p.ID,
		&p.FamilyID,
		&p.Name,
		&p.Specialty,
		&p.Address,
		&p.Phone,
		&p.Email,
		&p.Website,
		&p.Latitude,
		&p.Longitude,
		&p.ZipCode,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MedicalProviderPostgres) List(ctx context.Context, familyID string, f repository.MedicalProviderFilter) (*repository.PageResult[model.MedicalProvider], error) {
	where := []string{"family_id = $1"}
	args := []any{familyID}
	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE '%%' || $%d || '%%' OR specialty ILIKE '%%' || $%d || '%%' OR address ILIKE '%%' || $%d || '%%')", n, n, n))
	}
	if f.Specialty != "" {
		args = append(args, f.Specialty)
		where = append(where, fmt.Sprintf("specialty ILIKE '%%' || $%d || '%%'", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medical_providers WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	col, ok := medicalProviderSort[f.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}

	args = append(args, f.Page.Limit, f.Page.Offset)
	q := fmt.Sprintf(`SELECT %s FROM medical_providers WHERE %s ORDER BY %s %s NULLS LAST, id %s LIMIT $%d OFFSET $%d`,
		medicalProviderColumns, cond, col, dir, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MedicalProvider, 0)
	for rows.Next() {
		p, err := scanMedicalProvider(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.MedicalProvider]{Items: items, Total: total}, nil
}

func (r *MedicalProviderPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.MedicalProvider, error) {
	q := `SELECT ` + medicalProviderColumns + ` FROM medical_providers WHERE id = $1 AND family_id = $2`
	p, err := scanMedicalProvider(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *MedicalProviderPostgres) Create(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error) {
	q := `
		INSERT INTO medical_providers (family_id, name, specialty, address, phone, email, website,
			latitude, longitude, zip_code, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + medicalProviderColumns
	out, err := scanMedicalProvider(r.db.QueryRowContext(ctx, q,
		p.FamilyID, p.Name, p.Specialty, p.Address, p.Phone, p.Email, p.Website,
		p.Latitude, p.Longitude, p.ZipCode, p.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MedicalProviderPostgres) Update(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error) {
	q := `
		UPDATE medical_providers
		SET name = $3, specialty = $4, address = $5, phone = $6, email = $7, website = $8,
			latitude = $9, longitude = $10, zip_code = $11, notes = $12, updated_at = now()
		WHERE id = $1 AND family_id = $2
		RETURNING ` + medicalProviderColumns
	out, err := scanMedicalProvider(r.db.QueryRowContext(ctx, q,
		p.ID, p.FamilyID, p.Name, p.Specialty, p.Address, p.Phone, p.Email, p.Website,
		p.Latitude, p.Longitude, p.ZipCode, p.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MedicalProviderPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM medical_providers WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
