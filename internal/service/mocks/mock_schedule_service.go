package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) List(ctx context.Context, caller *model.User) ([]model.ScheduleTemplate, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleService) Get(ctx context.Context, caller *model.User, id int64) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleService) Create(ctx context.Context, caller *model.User, in service.TemplateInput) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleService) Update(ctx context.Context, caller *model.User, id int64, in service.TemplateInput) (*model.ScheduleTemplate, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScheduleTemplate), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockScheduleService) Apply(ctx context.Context, caller *model.User, in service.ApplyInput) (*service.ApplyResult, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ApplyResult), args.Error(1)
}

func (m *MockScheduleService) Preview(ctx context.Context, caller *model.User, in service.ApplyInput) (*service.PreviewResult, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PreviewResult), args.Error(1)
}
