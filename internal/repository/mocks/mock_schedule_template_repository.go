package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockScheduleTemplateRepository struct {
	mock.Mock
}

func (m *MockScheduleTemplateRepository) List(ctx context.Context, familyID string) ([]model.ScheduleTemplate, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleTemplateRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleTemplateRepository) FindActive(ctx context.Context, familyID string) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleTemplateRepository) Create(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleTemplateRepository) Update(ctx context.Context, t *model.ScheduleTemplate) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleTemplateRepository) Activate(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockScheduleTemplateRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
