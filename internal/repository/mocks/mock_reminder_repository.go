package mocks

import (
	"context"
	"time"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.Reminder, error) {
	args := m.Called(ctx, familyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.Reminder, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Create(ctx context.Context, r *model.Reminder) (*model.Reminder, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Update(ctx context.Context, r *model.Reminder, rearmFrom model.Date) (*model.Reminder, error) {
	args := m.Called(ctx, r, rearmFrom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockReminderRepository) ListPending(ctx context.Context, through model.Date) ([]model.Reminder, error) {
	args := m.Called(ctx, through)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reminder), args.Error(1)
}

func (m *MockReminderRepository) MarkNotified(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
