package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// MedicationPostgres is a PostgreSQL implementation of repository.MedicationRepository.
type MedicationPostgres struct {
	db *sql.DB
}

func NewMedicationPostgres(db *sql.DB) *MedicationPostgres {
	return &MedicationPostgres{db: db}
}

var _ repository.MedicationRepository = (*MedicationPostgres)(nil)

const medicationColumns = `id, family_id, name, dosage, frequency, instructions, start_date, end_date,
	is_active, reminder_enabled, to_char(reminder_time, 'HH24:MI'), notes, created_at, updated_at`

// sortable columns; anything else falls back to created_at.
var medicationSort = map[string]string{
	"name":       "name",
	"start_date": "start_date",
	"created_at": "created_at",
}

func scanMedication(row rowScanner) (*model.Medication, error) {
	var m model.Medication
	if err := row.Scan(
		&m.ID,
		&m.FamilyID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&m.Instructions,
		&m.StartDate,
		&m.EndDate,
		&m.IsActive,
		&m.ReminderEnabled,
		&m.ReminderTime,
		&m.Notes,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MedicationPostgres) List(ctx context.Context, familyID string, f repository.MedicationFilter) (*repository.PageResult[model.Medication], error) {
	where := []string{"family_id = $1"}
	args := []any{familyID}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		where = append(where, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.ReminderEnabled != nil {
		args = append(args, *f.ReminderEnabled)
		where = append(where, fmt.Sprintf("reminder_enabled = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medications WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, err
	}

	col, ok := medicationSort[f.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}

	args = append(args, f.Page.Limit, f.Page.Offset)
	q := fmt.Sprintf(`SELECT %s FROM medications WHERE %s ORDER BY %s %s NULLS LAST, id %s LIMIT $%d OFFSET $%d`,
		medicationColumns, cond, col, dir, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Medication]{Items: items, Total: total}, nil
}

func (r *MedicationPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.Medication, error) {
	q := `SELECT ` + medicationColumns + ` FROM medications WHERE id = $1 AND family_id = $2`
	m, err := scanMedication(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *MedicationPostgres) Create(ctx context.Context, m *model.Medication) (*model.Medication, error) {
	q := `
		INSERT INTO medications (family_id, name, dosage, frequency, instructions, start_date, end_date,
			is_active, reminder_enabled, reminder_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::time, $11)
		RETURNING ` + medicationColumns
	out, err := scanMedication(r.db.QueryRowContext(ctx, q,
		m.FamilyID, m.Name, m.Dosage, m.Frequency, m.Instructions, m.StartDate, m.EndDate,
		m.IsActive, m.ReminderEnabled, m.ReminderTime, m.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MedicationPostgres) Update(ctx context.Context, m *model.Medication) (*model.Medication, error) {
	q := `
		UPDATE medications
		SET name = $3, dosage = $4, frequency = $5, instructions = $6, start_date = $7, end_date = $8,
			is_active = $9, reminder_enabled = $10, reminder_time = $11::time, notes = $12, updated_at = now()
		WHERE id = $1 AND family_id = $2
		RETURNING ` + medicationColumns
	out, err := scanMedication(r.db.QueryRowContext(ctx, q,
		m.ID, m.FamilyID, m.Name, m.Dosage, m.Frequency, m.Instructions, m.StartDate, m.EndDate,
		m.IsActive, m.ReminderEnabled, m.ReminderTime, m.Notes,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *MedicationPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM medications WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *MedicationPostgres) ListWithReminders(ctx context.Context, familyID string) ([]model.Medication, error) {
	q := `SELECT ` + medicationColumns + ` FROM medications
		WHERE family_id = $1 AND is_active AND reminder_enabled AND reminder_time IS NOT NULL
		ORDER BY reminder_time, name`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}
