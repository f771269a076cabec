package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"coparent/internal/database"
	"coparent/internal/model"
	"coparent/internal/repository"
)

// CustodyPostgres is a PostgreSQL implementation of repository.CustodyRepository.
type CustodyPostgres struct {
	db *sql.DB
}

func NewCustodyPostgres(db *sql.DB) *CustodyPostgres {
	return &CustodyPostgres{db: db}
}

var _ repository.CustodyRepository = (*CustodyPostgres)(nil)

// TIME columns are rendered as HH:MM text so they scan into model.TimeOfDay.
const custodyColumns = `c.id, c.family_id, c.date, c.custodian_id, COALESCE(u.first_name, ''), c.actor_id,
	c.handoff_day, to_char(c.handoff_time, 'HH24:MI'), c.handoff_location, c.created_at`

const custodyFrom = ` FROM custody c LEFT JOIN users u ON u.id = c.custodian_id `

func scanCustody(row rowScanner) (*model.CustodyRecord, error) {
	var rec model.CustodyRecord
	if err := row.Scan(
		&rec.ID,
		&rec.FamilyID,
		&rec.Date,
		&rec.CustodianID,
		&rec.CustodianName,
		&rec.ActorID,
		&rec.HandoffDay,
		&rec.HandoffTime,
		&rec.HandoffLocation,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CustodyPostgres) ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.CustodyRecord, error) {
	q := `SELECT ` + custodyColumns + custodyFrom + `WHERE c.family_id = $1 AND c.date BETWEEN $2 AND $3 ORDER BY c.date`
	rows, err := r.db.QueryContext(ctx, q, familyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CustodyRecord, 0)
	for rows.Next() {
		rec, err := scanCustody(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	return items, rows.Err()
}

func (r *CustodyPostgres) FindByDate(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error) {
	q := `SELECT ` + custodyColumns + custodyFrom + `WHERE c.family_id = $1 AND c.date = $2`
	rec, err := scanCustody(r.db.QueryRowContext(ctx, q, familyID, d))
	if err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

func (r *CustodyPostgres) LastBefore(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error) {
	q := `SELECT ` + custodyColumns + custodyFrom + `WHERE c.family_id = $1 AND c.date < $2 ORDER BY c.date DESC LIMIT 1`
	rec, err := scanCustody(r.db.QueryRowContext(ctx, q, familyID, d))
	if err != nil {
		return nil, translate(err)
	}
	return rec, nil
}

func (r *CustodyPostgres) Create(ctx context.Context, rec *model.CustodyRecord) (*model.CustodyRecord, error) {
	const q = `
		INSERT INTO custody (family_id, date, actor_id, custodian_id, handoff_day, handoff_time, handoff_location)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7)
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		rec.FamilyID, rec.Date, rec.ActorID, rec.CustodianID, rec.HandoffDay, rec.HandoffTime, rec.HandoffLocation,
	).Scan(&id)
	if err != nil {
		return nil, translate(err)
	}
	return r.FindByDate(ctx, rec.FamilyID, rec.Date)
}

func (r *CustodyPostgres) Upsert(ctx context.Context, rec *model.CustodyRecord) (*model.CustodyRecord, error) {
	const q = `
		INSERT INTO custody (family_id, date, actor_id, custodian_id, handoff_day, handoff_time, handoff_location)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7)
		ON CONFLICT (family_id, date) DO UPDATE SET
			actor_id = EXCLUDED.actor_id,
			custodian_id = EXCLUDED.custodian_id,
			handoff_day = EXCLUDED.handoff_day,
			handoff_time = EXCLUDED.handoff_time,
			handoff_location = EXCLUDED.handoff_location
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		rec.FamilyID, rec.Date, rec.ActorID, rec.CustodianID, rec.HandoffDay, rec.HandoffTime, rec.HandoffLocation,
	).Scan(&id)
	if err != nil {
		return nil, translate(err)
	}
	return r.FindByDate(ctx, rec.FamilyID, rec.Date)
}

func (r *CustodyPostgres) SaveBatch(ctx context.Context, records []model.CustodyRecord, overwrite bool) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	q := `
		INSERT INTO custody (family_id, date, actor_id, custodian_id, handoff_day, handoff_time, handoff_location)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7)
		ON CONFLICT (family_id, date) DO NOTHING`
	if overwrite {
		q = `
		INSERT INTO custody (family_id, date, actor_id, custodian_id, handoff_day, handoff_time, handoff_location)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7)
		ON CONFLICT (family_id, date) DO UPDATE SET
			actor_id = EXCLUDED.actor_id,
			custodian_id = EXCLUDED.custodian_id,
			handoff_day = EXCLUDED.handoff_day,
			handoff_time = EXCLUDED.handoff_time,
			handoff_location = EXCLUDED.handoff_location`
	}

	written := 0
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, q)
		if err != nil {
			return fmt.Errorf("prepare custody insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			res, err := stmt.ExecContext(ctx,
				rec.FamilyID, rec.Date, rec.ActorID, rec.CustodianID, rec.HandoffDay, rec.HandoffTime, rec.HandoffLocation,
			)
			if err != nil {
				return fmt.Errorf("insert custody %s: %w", rec.Date, translate(err))
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			written += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
