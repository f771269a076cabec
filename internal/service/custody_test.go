package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coparent/internal/cache"
	cacheMocks "coparent/internal/cache/mocks"
	"coparent/internal/model"
	"coparent/internal/notify"
	notifyMocks "coparent/internal/notify/mocks"
	"coparent/internal/repository"
	repoMocks "coparent/internal/repository/mocks"
	"coparent/internal/schedule"
)

const (
	famID     = "fam-1"
	parentOne = "11111111-1111-1111-1111-111111111111"
	parentTwo = "22222222-2222-2222-2222-222222222222"
)

// fixedClock pins "now" to Thursday 2024-03-14 10:00 UTC.
func fixedClock() Clock {
	return func() time.Time { return time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC) }
}

func strPtr(s string) *string { return &s }

func testCaller() *model.User {
	return &model.User{ID: parentOne, FamilyID: famID, FirstName: "Ana"}
}

func testMembers() []model.User {
	return []model.User{
		{ID: parentOne, FamilyID: famID, FirstName: "Ana"},
		{ID: parentTwo, FamilyID: famID, FirstName: "Ben", SNSEndpointARN: strPtr("arn:aws:sns:us-east-1:1:endpoint/APNS/app/ben")},
	}
}

type custodyMocks struct {
	custody   *repoMocks.MockCustodyRepository
	templates *repoMocks.MockScheduleTemplateRepository
	users     *repoMocks.MockUserRepository
	cache     *cacheMocks.MockCustodyCache
	messenger *notifyMocks.MockMessenger
}

func newCustodyTestService() (CustodyService, custodyMocks) {
	m := custodyMocks{
		custody:   new(repoMocks.MockCustodyRepository),
		templates: new(repoMocks.MockScheduleTemplateRepository),
		users:     new(repoMocks.MockUserRepository),
		cache:     new(cacheMocks.MockCustodyCache),
		messenger: new(notifyMocks.MockMessenger),
	}
	svc := NewCustodyService(m.custody, m.templates, m.users, m.cache, m.messenger, fixedClock())
	return svc, m
}

func (m custodyMocks) assertExpectations(t *testing.T) {
	m.custody.AssertExpectations(t)
	m.templates.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.cache.AssertExpectations(t)
	m.messenger.AssertExpectations(t)
}

func alternatingDaily(ref string) schedule.Pattern {
	return schedule.Pattern{
		Type: schedule.PatternAlternatingDays,
		AlternatingDays: &schedule.AlternatingDaysPattern{
			StartingParent: schedule.SlotParent1,
			ReferenceDate:  ref,
			DaysPerTurn:    1,
		},
	}
}

func TestCustodyService_Month(t *testing.T) {
	ctx := context.Background()
	march1 := model.NewDate(2024, time.March, 1)
	march31 := model.NewDate(2024, time.March, 31)
	tomorrow := model.NewDate(2024, time.March, 15)

	t.Run("served from cache", func(t *testing.T) {
		svc, m := newCustodyTestService()
		cached := []model.CustodyRecord{{ID: 1, Date: march1, CustodianID: parentOne}}
		m.cache.On("Get", ctx, cache.ViewMonth, famID, 2024, time.March).Return(cached, true, nil)

		got, err := svc.Month(ctx, testCaller(), 2024, 3)
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		m.assertExpectations(t)
	})

	t.Run("generates future days from the active template", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.cache.On("Get", ctx, cache.ViewMonth, famID, 2024, time.March).Return(nil, false, nil)
		m.templates.On("FindActive", ctx, famID).
			Return(&model.ScheduleTemplate{ID: 3, FamilyID: famID, Pattern: alternatingDaily("2024-03-15")}, nil)
		m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
		// The 15th is already recorded for parent one; it is kept and seeds handoff detection.
		m.custody.On("ListRange", ctx, famID, tomorrow, march31).
			Return([]model.CustodyRecord{{Date: tomorrow, CustodianID: parentOne}}, nil)
		m.custody.On("LastBefore", ctx, famID, tomorrow).
			Return(&model.CustodyRecord{CustodianID: parentTwo}, nil)
		m.custody.On("SaveBatch", ctx, mock.MatchedBy(func(recs []model.CustodyRecord) bool {
			if len(recs) != 16 {
				return false
			}
			first := recs[0]
			return first.Date == model.NewDate(2024, time.March, 16) &&
				first.CustodianID == parentTwo &&
				first.HandoffDay &&
				first.HandoffTime != nil && first.HandoffTime.String() == "12:00" &&
				first.ActorID == parentOne
		}), false).Return(16, nil)
		m.cache.On("Invalidate", ctx, famID, []time.Time{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}).Return(nil)

		stored := []model.CustodyRecord{{ID: 9, Date: march1, CustodianID: parentOne}}
		m.custody.On("ListRange", ctx, famID, march1, march31).Return(stored, nil)
		m.cache.On("Set", ctx, cache.ViewMonth, famID, 2024, time.March, stored).Return(nil)

		got, err := svc.Month(ctx, testCaller(), 2024, 3)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		m.assertExpectations(t)
	})

	t.Run("past month is never generated", func(t *testing.T) {
		svc, m := newCustodyTestService()
		feb1, feb29 := model.NewDate(2024, time.February, 1), model.NewDate(2024, time.February, 29)
		m.cache.On("Get", ctx, cache.ViewMonth, famID, 2024, time.February).Return(nil, false, nil)
		m.custody.On("ListRange", ctx, famID, feb1, feb29).Return([]model.CustodyRecord{}, nil)
		m.cache.On("Set", ctx, cache.ViewMonth, famID, 2024, time.February, []model.CustodyRecord{}).Return(nil)

		got, err := svc.Month(ctx, testCaller(), 2024, 2)
		require.NoError(t, err)
		assert.Empty(t, got)
		m.templates.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("generation failure still returns the month", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.cache.On("Get", ctx, cache.ViewMonth, famID, 2024, time.March).Return(nil, false, errors.New("redis down"))
		m.templates.On("FindActive", ctx, famID).Return(nil, errors.New("db down"))
		m.custody.On("ListRange", ctx, famID, march1, march31).Return([]model.CustodyRecord{}, nil)
		m.cache.On("Set", ctx, cache.ViewMonth, famID, 2024, time.March, []model.CustodyRecord{}).Return(errors.New("redis down"))

		_, err := svc.Month(ctx, testCaller(), 2024, 3)
		require.NoError(t, err)
		m.assertExpectations(t)
	})

	t.Run("invalid month", func(t *testing.T) {
		svc, _ := newCustodyTestService()
		_, err := svc.Month(ctx, testCaller(), 2024, 13)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("user without family", func(t *testing.T) {
		svc, _ := newCustodyTestService()
		_, err := svc.Month(ctx, &model.User{ID: parentOne}, 2024, 3)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestCustodyService_Handoffs(t *testing.T) {
	ctx := context.Background()
	svc, m := newCustodyTestService()
	noon := model.TimeOfDay{Hour: 12}
	month := []model.CustodyRecord{
		{ID: 1, Date: model.NewDate(2024, time.March, 1), CustodianID: parentOne},
		{ID: 2, Date: model.NewDate(2024, time.March, 2), CustodianID: parentTwo, HandoffDay: true, HandoffTime: &noon},
		{ID: 3, Date: model.NewDate(2024, time.March, 3), CustodianID: parentOne, HandoffDay: true},
	}
	m.cache.On("Get", ctx, cache.ViewHandoffs, famID, 2024, time.March).Return(nil, false, nil)
	m.cache.On("Get", ctx, cache.ViewMonth, famID, 2024, time.March).Return(month, true, nil)
	m.cache.On("Set", ctx, cache.ViewHandoffs, famID, 2024, time.March, []model.CustodyRecord{month[1]}).Return(nil)

	got, err := svc.Handoffs(ctx, testCaller(), 2024, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	m.assertExpectations(t)
}

func TestCustodyService_Create(t *testing.T) {
	ctx := context.Background()
	day := model.NewDate(2024, time.March, 20)
	monthStart := []time.Time{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	tests := []struct {
		name       string
		in         CustodyInput
		setupMocks func(m custodyMocks)
		wantErr    error
		check      func(t *testing.T, rec *model.CustodyRecord)
	}{
		{
			name: "derives handoff from previous day and pushes co-parent",
			in:   CustodyInput{Date: day, CustodianID: parentTwo},
			setupMocks: func(m custodyMocks) {
				m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
				m.custody.On("FindByDate", ctx, famID, day).Return(nil, repository.ErrNotFound)
				m.custody.On("FindByDate", ctx, famID, day.AddDays(-1)).
					Return(&model.CustodyRecord{CustodianID: parentOne}, nil)
				m.custody.On("Create", ctx, mock.MatchedBy(func(r *model.CustodyRecord) bool {
					return r.HandoffDay && r.CustodianID == parentTwo && r.ActorID == parentOne && r.FamilyID == famID
				})).Return(&model.CustodyRecord{ID: 7, FamilyID: famID, Date: day, CustodianID: parentTwo, HandoffDay: true}, nil)
				m.cache.On("Invalidate", ctx, famID, monthStart).Return(nil)
				m.messenger.On("Push", ctx, "arn:aws:sns:us-east-1:1:endpoint/APNS/app/ben", mock.MatchedBy(func(p notify.Push) bool {
					return p.Title == "Schedule Updated" &&
						p.Subtitle == "Ben now has custody" &&
						p.Body == "Ana changed the schedule for Wednesday, March 20. Tap to manage your schedule." &&
						p.Category == "CUSTODY_CHANGE" &&
						p.Data["date"] == "2024-03-20" &&
						p.Data["deep_link"] == "calndr://schedule"
				})).Return(nil)
			},
			check: func(t *testing.T, rec *model.CustodyRecord) {
				assert.Equal(t, int64(7), rec.ID)
				assert.Equal(t, "Ben", rec.CustodianName)
			},
		},
		{
			name: "handoff time supplied marks a handoff without lookup",
			in:   CustodyInput{Date: day, CustodianID: parentOne, HandoffTime: &model.TimeOfDay{Hour: 17}},
			setupMocks: func(m custodyMocks) {
				m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
				m.custody.On("FindByDate", ctx, famID, day).Return(nil, repository.ErrNotFound)
				m.custody.On("Create", ctx, mock.MatchedBy(func(r *model.CustodyRecord) bool {
					return r.HandoffDay && r.HandoffTime.String() == "17:00"
				})).Return(&model.CustodyRecord{ID: 8, Date: day, CustodianID: parentOne, HandoffDay: true}, nil)
				m.cache.On("Invalidate", ctx, famID, monthStart).Return(nil)
				m.messenger.On("Push", ctx, mock.Anything, mock.Anything).Return(notify.ErrDisabled)
			},
			check: func(t *testing.T, rec *model.CustodyRecord) {
				assert.True(t, rec.HandoffDay)
			},
		},
		{
			name: "push failure is not returned",
			in:   CustodyInput{Date: day, CustodianID: parentOne, HandoffDay: new(bool)},
			setupMocks: func(m custodyMocks) {
				m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
				m.custody.On("FindByDate", ctx, famID, day).Return(nil, repository.ErrNotFound)
				m.custody.On("Create", ctx, mock.Anything).Return(&model.CustodyRecord{ID: 9, Date: day, CustodianID: parentOne}, nil)
				m.cache.On("Invalidate", ctx, famID, monthStart).Return(errors.New("redis down"))
				m.messenger.On("Push", ctx, mock.Anything, mock.Anything).Return(errors.New("endpoint disabled"))
			},
		},
		{
			name: "existing date is a conflict",
			in:   CustodyInput{Date: day, CustodianID: parentOne},
			setupMocks: func(m custodyMocks) {
				m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
				m.custody.On("FindByDate", ctx, famID, day).Return(&model.CustodyRecord{ID: 1}, nil)
			},
			wantErr: ErrConflict,
		},
		{
			name: "custodian outside the family",
			in:   CustodyInput{Date: day, CustodianID: "33333333-3333-3333-3333-333333333333"},
			setupMocks: func(m custodyMocks) {
				m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:       "missing date",
			in:         CustodyInput{CustodianID: parentOne},
			setupMocks: func(m custodyMocks) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "custodian id not a uuid",
			in:         CustodyInput{Date: day, CustodianID: "bob"},
			setupMocks: func(m custodyMocks) {},
			wantErr:    ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newCustodyTestService()
			tt.setupMocks(m)

			rec, err := svc.Create(ctx, testCaller(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				if tt.check != nil {
					tt.check(t, rec)
				}
			}
			m.assertExpectations(t)
		})
	}
}

func TestCustodyService_Update(t *testing.T) {
	ctx := context.Background()
	day := model.NewDate(2024, time.April, 2)

	t.Run("missing record is not found", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
		m.custody.On("FindByDate", ctx, famID, day).Return(nil, repository.ErrNotFound)

		_, err := svc.Update(ctx, testCaller(), day, CustodyInput{CustodianID: parentTwo})
		assert.ErrorIs(t, err, ErrNotFound)
		m.assertExpectations(t)
	})

	t.Run("same custodian only invalidates", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
		m.custody.On("FindByDate", ctx, famID, day).Return(&model.CustodyRecord{ID: 4, Date: day, CustodianID: parentTwo}, nil)
		m.custody.On("Upsert", ctx, mock.MatchedBy(func(r *model.CustodyRecord) bool {
			return r.Date == day && !r.HandoffDay && r.HandoffLocation != nil && *r.HandoffLocation == "school"
		})).Return(&model.CustodyRecord{ID: 4, Date: day, CustodianID: parentTwo}, nil)
		m.cache.On("Invalidate", ctx, famID, []time.Time{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}).Return(nil)

		rec, err := svc.Update(ctx, testCaller(), day, CustodyInput{CustodianID: parentTwo, HandoffLocation: strPtr("school")})
		require.NoError(t, err)
		assert.Equal(t, "Ben", rec.CustodianName)
		m.messenger.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestCustodyService_Bulk(t *testing.T) {
	ctx := context.Background()
	d := func(day int) model.Date { return model.NewDate(2024, time.March, day) }

	t.Run("sorts and derives handoffs within the batch", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)
		m.custody.On("SaveBatch", ctx, mock.MatchedBy(func(recs []model.CustodyRecord) bool {
			return len(recs) == 3 &&
				recs[0].Date == d(20) && !recs[0].HandoffDay &&
				recs[1].Date == d(21) && recs[1].HandoffDay &&
				recs[2].Date == d(22) && recs[2].HandoffDay
		}), false).Return(2, nil)
		m.cache.On("Invalidate", ctx, famID, []time.Time{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}).Return(nil)

		n, err := svc.Bulk(ctx, testCaller(), []CustodyInput{
			{Date: d(22), CustodianID: parentOne},
			{Date: d(20), CustodianID: parentOne},
			{Date: d(21), CustodianID: parentTwo},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		m.assertExpectations(t)
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, _ := newCustodyTestService()
		_, err := svc.Bulk(ctx, testCaller(), nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects unknown custodian before writing", func(t *testing.T) {
		svc, m := newCustodyTestService()
		m.users.On("ListByFamily", ctx, famID).Return(testMembers(), nil)

		_, err := svc.Bulk(ctx, testCaller(), []CustodyInput{
			{Date: d(20), CustodianID: parentOne},
			{Date: d(21), CustodianID: "33333333-3333-3333-3333-333333333333"},
		})
		assert.ErrorIs(t, err, ErrValidation)
		m.custody.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything, mock.Anything)
	})
}
