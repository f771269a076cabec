package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coparent/internal/model"
	"coparent/internal/repository"
)

var medicationCols = []string{
	"id", "family_id", "name", "dosage", "frequency", "instructions", "start_date", "end_date",
	"is_active", "reminder_enabled", "reminder_time", "notes", "created_at", "updated_at",
}

func medicationRow(rows *sqlmock.Rows, id int64, name string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, "fam-1", name, "5ml", "daily", nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil,
		true, true, "08:00", nil, now, now)
}

func TestMedicationPostgres_List(t *testing.T) {
	ctx := context.Background()
	active := true

	t.Run("filters and sort", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM medications WHERE family_id = \$1 AND is_active = \$2`).
			WithArgs("fam-1", true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(`SELECT (.+) FROM medications WHERE family_id = \$1 AND is_active = \$2 ORDER BY name DESC NULLS LAST, id DESC LIMIT \$3 OFFSET \$4`).
			WithArgs("fam-1", true, 2, 0).
			WillReturnRows(medicationRow(medicationRow(sqlmock.NewRows(medicationCols), 2, "Zyrtec"), 1, "Amoxicillin"))

		res, err := NewMedicationPostgres(db).List(ctx, "fam-1", repository.MedicationFilter{
			IsActive: &active,
			SortBy:   "name",
			Desc:     true,
			Page:     repository.PageQuery{Limit: 2, Offset: 0},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "Zyrtec", res.Items[0].Name)
		require.NotNil(t, res.Items[0].StartDate)
		assert.Equal(t, model.NewDate(2024, time.January, 1), *res.Items[0].StartDate)
		assert.Nil(t, res.Items[0].EndDate)
		assert.Equal(t, "08:00", res.Items[0].ReminderTime.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown sort column falls back to created_at", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM medications WHERE family_id = \$1$`).
			WithArgs("fam-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`ORDER BY created_at ASC NULLS LAST, id ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("fam-1", 10, 20).
			WillReturnRows(sqlmock.NewRows(medicationCols))

		res, err := NewMedicationPostgres(db).List(ctx, "fam-1", repository.MedicationFilter{
			SortBy: "name; DROP TABLE medications",
			Page:   repository.PageQuery{Limit: 10, Offset: 20},
		})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMedicationPostgres_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM medications WHERE id = \$1 AND family_id = \$2`).
		WithArgs(int64(7), "fam-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewMedicationPostgres(db).Delete(context.Background(), "fam-1", 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMedicationPostgres_ListWithReminders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM medications\s+WHERE family_id = \$1 AND is_active AND reminder_enabled`).
		WithArgs("fam-1").
		WillReturnRows(medicationRow(sqlmock.NewRows(medicationCols), 1, "Vitamin D"))

	items, err := NewMedicationPostgres(db).ListWithReminders(context.Background(), "fam-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Vitamin D", items[0].Name)
}
