package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coparent/internal/model"
	"coparent/internal/repository"
	repoMocks "coparent/internal/repository/mocks"
)

func TestMedicationService_List(t *testing.T) {
	ctx := context.Background()
	active := true

	tests := []struct {
		name       string
		query      MedicationQuery
		wantFilter repository.MedicationFilter
		total      int
		wantPage   MedicationPage
		wantField  string
	}{
		{
			name:       "defaults",
			query:      MedicationQuery{},
			wantFilter: repository.MedicationFilter{SortBy: "name", Page: repository.PageQuery{Limit: 20, Offset: 0}},
			total:      41,
			wantPage:   MedicationPage{Total: 41, Page: 1, Limit: 20, TotalPages: 3},
		},
		{
			name:  "filter sort and page",
			query: MedicationQuery{IsActive: &active, SortBy: "start_date", SortOrder: "DESC", Page: Page{Page: 3, Limit: 500}},
			wantFilter: repository.MedicationFilter{
				IsActive: &active,
				SortBy:   "start_date",
				Desc:     true,
				Page:     repository.PageQuery{Limit: 100, Offset: 200},
			},
			total:    0,
			wantPage: MedicationPage{Total: 0, Page: 3, Limit: 100, TotalPages: 0},
		},
		{
			name:      "unknown sort column",
			query:     MedicationQuery{SortBy: "dosage"},
			wantField: "sort_by",
		},
		{
			name:      "unknown sort order",
			query:     MedicationQuery{SortOrder: "sideways"},
			wantField: "sort_order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockMedicationRepository)
			svc := NewMedicationService(mRepo, fixedClock())

			if tt.wantField == "" {
				mRepo.On("List", ctx, famID, tt.wantFilter).
					Return(&repository.PageResult[model.Medication]{Items: []model.Medication{}, Total: tt.total}, nil)
			}

			got, err := svc.List(ctx, testCaller(), tt.query)
			if tt.wantField != "" {
				var svcErr *Error
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, tt.wantField, svcErr.Field)
				return
			}
			require.NoError(t, err)
			tt.wantPage.Medications = []model.Medication{}
			assert.Equal(t, tt.wantPage, *got)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestMedicationService_Create(t *testing.T) {
	ctx := context.Background()
	eight := model.TimeOfDay{Hour: 8}

	t.Run("defaults to active", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Medication) bool {
			return m.Name == "Amoxicillin" && m.IsActive && m.FamilyID == famID && m.ReminderEnabled
		})).Return(&model.Medication{ID: 1, Name: "Amoxicillin"}, nil)

		svc := NewMedicationService(mRepo, fixedClock())
		got, err := svc.Create(ctx, testCaller(), MedicationInput{Name: " Amoxicillin ", ReminderEnabled: true, ReminderTime: &eight})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		mRepo.AssertExpectations(t)
	})

	cases := map[string]struct {
		in    MedicationInput
		field string
	}{
		"empty name":             {MedicationInput{Name: "  "}, "name"},
		"end before start":       {MedicationInput{Name: "X", StartDate: datePtr(2024, time.May, 2), EndDate: datePtr(2024, time.May, 1)}, "end_date"},
		"time without reminders": {MedicationInput{Name: "X", ReminderTime: &eight}, "reminder_time"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewMedicationService(new(repoMocks.MockMedicationRepository), fixedClock())
			_, err := svc.Create(ctx, testCaller(), tc.in)

			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, tc.field, svcErr.Field)
		})
	}
}

func TestMedicationService_Update(t *testing.T) {
	ctx := context.Background()
	start := model.NewDate(2024, time.March, 1)

	t.Run("patch keeps unset fields", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("FindByID", ctx, famID, int64(4)).
			Return(&model.Medication{ID: 4, FamilyID: famID, Name: "Ibuprofen", Dosage: strPtr("200mg"), StartDate: &start, IsActive: true}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(m *model.Medication) bool {
			return m.Name == "Ibuprofen" && *m.Dosage == "400mg" && !m.IsActive && m.StartDate.Equal(start)
		})).Return(&model.Medication{ID: 4}, nil)

		svc := NewMedicationService(mRepo, fixedClock())
		inactive := false
		_, err := svc.Update(ctx, testCaller(), 4, MedicationPatch{Dosage: strPtr("400mg"), IsActive: &inactive})
		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("merged result is validated", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("FindByID", ctx, famID, int64(4)).
			Return(&model.Medication{ID: 4, FamilyID: famID, Name: "Ibuprofen", StartDate: &start}, nil)

		svc := NewMedicationService(mRepo, fixedClock())
		_, err := svc.Update(ctx, testCaller(), 4, MedicationPatch{EndDate: datePtr(2024, time.February, 1)})
		assert.ErrorIs(t, err, ErrValidation)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("disabling reminders clears the reminder time", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("FindByID", ctx, famID, int64(4)).
			Return(&model.Medication{ID: 4, FamilyID: famID, Name: "Ibuprofen", IsActive: true,
				ReminderEnabled: true, ReminderTime: &model.TimeOfDay{Hour: 8}}, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(m *model.Medication) bool {
			return !m.ReminderEnabled && m.ReminderTime == nil
		})).Return(&model.Medication{ID: 4}, nil)

		svc := NewMedicationService(mRepo, fixedClock())
		off := false
		_, err := svc.Update(ctx, testCaller(), 4, MedicationPatch{ReminderEnabled: &off})
		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("reminder time with reminders disabled", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("FindByID", ctx, famID, int64(4)).
			Return(&model.Medication{ID: 4, FamilyID: famID, Name: "Ibuprofen"}, nil)

		svc := NewMedicationService(mRepo, fixedClock())
		_, err := svc.Update(ctx, testCaller(), 4, MedicationPatch{ReminderTime: &model.TimeOfDay{Hour: 9}})
		var svcErr *Error
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "reminder_time", svcErr.Field)
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing medication", func(t *testing.T) {
		mRepo := new(repoMocks.MockMedicationRepository)
		mRepo.On("FindByID", ctx, famID, int64(9)).Return(nil, repository.ErrNotFound)

		svc := NewMedicationService(mRepo, fixedClock())
		_, err := svc.Update(ctx, testCaller(), 9, MedicationPatch{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestNextReminder(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	at := func(h int) *model.TimeOfDay { return &model.TimeOfDay{Hour: h} }

	tests := []struct {
		name   string
		med    model.Medication
		want   time.Time
		wantOK bool
	}{
		{"later today", model.Medication{ReminderTime: at(18)}, time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC), true},
		{"already passed today", model.Medication{ReminderTime: at(8)}, time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), true},
		{"starts later", model.Medication{ReminderTime: at(8), StartDate: datePtr(2024, time.April, 1)}, time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC), true},
		{"ends today after passing", model.Medication{ReminderTime: at(8), EndDate: datePtr(2024, time.March, 14)}, time.Time{}, false},
		{"ends today before firing", model.Medication{ReminderTime: at(18), EndDate: datePtr(2024, time.March, 14)}, time.Date(2024, 3, 14, 18, 0, 0, 0, time.UTC), true},
		{"no time", model.Medication{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextReminder(tt.med, now)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestMedicationService_Reminders(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockMedicationRepository)
	mRepo.On("ListWithReminders", ctx, famID).Return([]model.Medication{
		{ID: 1, Name: "A", ReminderEnabled: true, ReminderTime: &model.TimeOfDay{Hour: 20}},
		{ID: 2, Name: "B", ReminderEnabled: true, ReminderTime: &model.TimeOfDay{Hour: 8}, EndDate: datePtr(2024, time.March, 1)},
	}, nil)

	svc := NewMedicationService(mRepo, fixedClock())
	got, err := svc.Reminders(ctx, testCaller())
	require.NoError(t, err)
	require.Equal(t, 1, got.Total)
	assert.Equal(t, int64(1), got.Reminders[0].ID)
	assert.True(t, got.Reminders[0].NextReminder.Equal(time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)))
}
