package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"coparent/internal/database"
	"coparent/internal/model"
	"coparent/internal/repository"
	"coparent/internal/schedule"
)

// ScheduleTemplatePostgres is a PostgreSQL implementation of repository.ScheduleTemplateRepository.
// The pattern body is stored as JSONB next to a denormalized pattern_type column.
type ScheduleTemplatePostgres struct {
	db *sql.DB
}

func NewScheduleTemplatePostgres(db *sql.DB) *ScheduleTemplatePostgres {
	return &ScheduleTemplatePostgres{db: db}
}

var _ repository.ScheduleTemplateRepository = (*ScheduleTemplatePostgres)(nil)

const templateColumns = `id, family_id, name, description, pattern, is_active, created_by_user_id, created_at, updated_at`

const deactivateTemplates = `UPDATE schedule_templates SET is_active = false, updated_at = now() WHERE family_id = $1 AND is_active AND id <> $2`

func scanTemplate(row rowScanner) (*model.ScheduleTemplate, error) {
	var (
		t   model.ScheduleTemplate
		raw []byte
	)
	if err := row.Scan(&t.ID, &t.FamilyID, &t.Name, &t.Description, &raw, &t.IsActive, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	var p schedule.Pattern
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode pattern of template %d: %w", t.ID, err)
	}
	t.Pattern = p
	return &t, nil
}

func (r *ScheduleTemplatePostgres) List(ctx context.Context, familyID string) ([]model.ScheduleTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM schedule_templates WHERE family_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ScheduleTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

func (r *ScheduleTemplatePostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.ScheduleTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM schedule_templates WHERE id = $1 AND family_id = $2`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *ScheduleTemplatePostgres) FindActive(ctx context.Context, familyID string) (*model.ScheduleTemplate, error) {
	q := `SELECT ` + templateColumns + ` FROM schedule_templates WHERE family_id = $1 AND is_active LIMIT 1`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, q, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (r *ScheduleTemplatePostgres) Create(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error) {
	raw, err := json.Marshal(t.Pattern)
	if err != nil {
		return nil, fmt.Errorf("encode pattern: %w", err)
	}

	var out *model.ScheduleTemplate
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if t.IsActive {
			if _, err := tx.ExecContext(ctx, deactivateTemplates, t.FamilyID, 0); err != nil {
				return err
			}
		}
		q := `
			INSERT INTO schedule_templates (family_id, name, description, pattern_type, pattern, is_active, created_by_user_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING ` + templateColumns
		created, err := scanTemplate(tx.QueryRowContext(ctx, q,
			t.FamilyID, t.Name, t.Description, string(t.Type), raw, t.IsActive, t.CreatedBy,
		))
		if err != nil {
			return translate(err)
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleTemplatePostgres) Update(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error) {
	raw, err := json.Marshal(t.Pattern)
	if err != nil {
		return nil, fmt.Errorf("encode pattern: %w", err)
	}

	var out *model.ScheduleTemplate
	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if t.IsActive {
			if _, err := tx.ExecContext(ctx, deactivateTemplates, t.FamilyID, t.ID); err != nil {
				return err
			}
		}
		q := `
			UPDATE schedule_templates
			SET name = $3, description = $4, pattern_type = $5, pattern = $6, is_active = $7, updated_at = now()
			WHERE id = $1 AND family_id = $2
			RETURNING ` + templateColumns
		updated, err := scanTemplate(tx.QueryRowContext(ctx, q,
			t.ID, t.FamilyID, t.Name, t.Description, string(t.Type), raw, t.IsActive,
		))
		if err != nil {
			return translate(err)
		}
		out = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleTemplatePostgres) Activate(ctx context.Context, familyID string, id int64) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deactivateTemplates, familyID, id); err != nil {
			return err
		}
		const q = `UPDATE schedule_templates SET is_active = true, updated_at = now() WHERE id = $1 AND family_id = $2`
		res, err := tx.ExecContext(ctx, q, id, familyID)
		if err != nil {
			return err
		}
		return expectAffected(res)
	})
}

func (r *ScheduleTemplatePostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM schedule_templates WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
