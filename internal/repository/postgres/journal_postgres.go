package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// JournalPostgres is a PostgreSQL implementation of repository.JournalRepository.
type JournalPostgres struct {
	db *sql.DB
}

func NewJournalPostgres(db *sql.DB) *JournalPostgres {
	return &JournalPostgres{db: db}
}

var _ repository.JournalRepository = (*JournalPostgres)(nil)

const journalColumns = `j.id, j.family_id, j.user_id, TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, '')),
	j.title, j.content, j.entry_date, j.created_at, j.updated_at`

const journalFrom = ` FROM journal_entries j LEFT JOIN users u ON u.id = j.user_id `

func scanJournal(row rowScanner) (*model.JournalEntry, error) {
	var e model.JournalEntry
	if err := row.Scan(
		&e.ID,
		&e.FamilyID,
		&e.UserID,
		&e.AuthorName,
		&e.Title,
		&e.Content,
		&e.EntryDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *JournalPostgres) List(ctx context.Context, familyID string, pq repository.PageQuery) (*repository.PageResult[model.JournalEntry], error) {
	const qCount = `SELECT COUNT(*) FROM journal_entries WHERE family_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, familyID).Scan(&total); err != nil {
		return nil, err
	}

	q := `SELECT ` + journalColumns + journalFrom + `
		WHERE j.family_id = $1
		ORDER BY j.entry_date DESC, j.created_at DESC, j.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, q, familyID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.JournalEntry, 0)
	for rows.Next() {
		e, err := scanJournal(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.JournalEntry]{Items: items, Total: total}, nil
}

func (r *JournalPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.JournalEntry, error) {
	q := `SELECT ` + journalColumns + journalFrom + `WHERE j.id = $1 AND j.family_id = $2`
	e, err := scanJournal(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return e, nil
}

func (r *JournalPostgres) Create(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error) {
	const q = `
		INSERT INTO journal_entries (family_id, user_id, title, content, entry_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, e.FamilyID, e.UserID, e.Title, e.Content, e.EntryDate).Scan(&id); err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, e.FamilyID, id)
}

func (r *JournalPostgres) Update(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error) {
	const q = `
		UPDATE journal_entries SET title = $3, content = $4, entry_date = $5, updated_at = now()
		WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, e.ID, e.FamilyID, e.Title, e.Content, e.EntryDate)
	if err != nil {
		return nil, err
	}
	if err := expectAffected(res); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, e.FamilyID, e.ID)
}

func (r *JournalPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM journal_entries WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
