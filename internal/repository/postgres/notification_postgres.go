package postgres

import (
	"context"
	"database/sql"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// NotificationEmailPostgres is a PostgreSQL implementation of repository.NotificationEmailRepository.
type NotificationEmailPostgres struct {
	db *sql.DB
}

func NewNotificationEmailPostgres(db *sql.DB) *NotificationEmailPostgres {
	return &NotificationEmailPostgres{db: db}
}

var _ repository.NotificationEmailRepository = (*NotificationEmailPostgres)(nil)

func scanNotificationEmail(row rowScanner) (*model.NotificationEmail, error) {
	var n model.NotificationEmail
	if err := row.Scan(&n.ID, &n.FamilyID, &n.Email, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationEmailPostgres) List(ctx context.Context, familyID string) ([]model.NotificationEmail, error) {
	const q = `SELECT id, family_id, email, created_at FROM notification_emails WHERE family_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.NotificationEmail, 0)
	for rows.Next() {
		n, err := scanNotificationEmail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *n)
	}
	return items, rows.Err()
}

func (r *NotificationEmailPostgres) Create(ctx context.Context, familyID, email string) (*model.NotificationEmail, error) {
	const q = `
		INSERT INTO notification_emails (family_id, email) VALUES ($1, $2)
		RETURNING id, family_id, email, created_at`
	n, err := scanNotificationEmail(r.db.QueryRowContext(ctx, q, familyID, email))
	if err != nil {
		return nil, translate(err)
	}
	return n, nil
}

func (r *NotificationEmailPostgres) Update(ctx context.Context, familyID string, id int64, email string) (*model.NotificationEmail, error) {
	const q = `
		UPDATE notification_emails SET email = $3 WHERE id = $1 AND family_id = $2
		RETURNING id, family_id, email, created_at`
	n, err := scanNotificationEmail(r.db.QueryRowContext(ctx, q, id, familyID, email))
	if err != nil {
		return nil, translate(err)
	}
	return n, nil
}

func (r *NotificationEmailPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM notification_emails WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
