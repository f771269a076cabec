package postgres

import (
	"context"
	"database/sql"
	"time"

	"coparent/internal/model"
	"coparent/internal/repository"
)

// ReminderPostgres is a PostgreSQL implementation of repository.ReminderRepository.
type ReminderPostgres struct {
	db *sql.DB
}

func NewReminderPostgres(db *sql.DB) *ReminderPostgres {
	return &ReminderPostgres{db: db}
}

var _ repository.ReminderRepository = (*ReminderPostgres)(nil)

const reminderColumns = `id, family_id, date, text, notification_enabled, to_char(notification_time, 'HH24:MI'), notified_at, created_at, updated_at`

func scanReminder(row rowScanner) (*model.Reminder, error) {
	var rem model.Reminder
	if err := row.Scan(
		&rem.ID,
		&rem.FamilyID,
		&rem.Date,
		&rem.Text,
		&rem.NotificationEnabled,
		&rem.NotificationTime,
		&rem.NotifiedAt,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *ReminderPostgres) queryList(ctx context.Context, q string, args ...any) ([]model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rem)
	}
	return items, rows.Err()
}

func (r *ReminderPostgres) ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.Reminder, error) {
	q := `SELECT ` + reminderColumns + ` FROM reminders WHERE family_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date`
	return r.queryList(ctx, q, familyID, from, to)
}

func (r *ReminderPostgres) FindByID(ctx context.Context, familyID string, id int64) (*model.Reminder, error) {
	q := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1 AND family_id = $2`
	rem, err := scanReminder(r.db.QueryRowContext(ctx, q, id, familyID))
	if err != nil {
		return nil, translate(err)
	}
	return rem, nil
}

func (r *ReminderPostgres) Create(ctx context.Context, rem *model.Reminder) (*model.Reminder, error) {
	q := `
		INSERT INTO reminders (family_id, date, text, notification_enabled, notification_time)
		VALUES ($1, $2, $3, $4, $5::time)
		RETURNING ` + reminderColumns
	out, err := scanReminder(r.db.QueryRowContext(ctx, q,
		rem.FamilyID, rem.Date, rem.Text, rem.NotificationEnabled, rem.NotificationTime,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Update rewrites the reminder. A reminder moved to rearmFrom or later fires
// again; text-only edits keep notified_at.
func (r *ReminderPostgres) Update(ctx context.Context, rem *model.Reminder, rearmFrom model.Date) (*model.Reminder, error) {
	q := `
		UPDATE reminders
		SET date = $3, text = $4, notification_enabled = $5, notification_time = $6::time,
			notified_at = CASE
				WHEN (date IS DISTINCT FROM $3 OR notification_time IS DISTINCT FROM $6::time) AND $3 >= $7::date
				THEN NULL ELSE notified_at END,
			updated_at = now()
		WHERE id = $1 AND family_id = $2
		RETURNING ` + reminderColumns
	out, err := scanReminder(r.db.QueryRowContext(ctx, q,
		rem.ID, rem.FamilyID, rem.Date, rem.Text, rem.NotificationEnabled, rem.NotificationTime, rearmFrom,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ReminderPostgres) Delete(ctx context.Context, familyID string, id int64) error {
	const q = `DELETE FROM reminders WHERE id = $1 AND family_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, familyID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (r *ReminderPostgres) ListPending(ctx context.Context, through model.Date) ([]model.Reminder, error) {
	q := `SELECT ` + reminderColumns + ` FROM reminders
		WHERE notification_enabled AND notified_at IS NULL AND date <= $1
		ORDER BY date, notification_time NULLS FIRST`
	return r.queryList(ctx, q, through)
}

func (r *ReminderPostgres) MarkNotified(ctx context.Context, id int64, at time.Time) error {
	const q = `UPDATE reminders SET notified_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
