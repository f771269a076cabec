package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockChildService struct {
	mock.Mock
}

func (m *MockChildService) List(ctx context.Context, caller *model.User) ([]model.Child, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}

func (m *MockChildService) Create(ctx context.Context, caller *model.User, in service.ChildInput) (*model.Child, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Child), args.Error(1)
}

func (m *MockChildService) Update(ctx context.Context, caller *model.User, id string, in service.ChildInput) (*model.Child, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Child), args.Error(1)
}

func (m *MockChildService) Delete(ctx context.Context, caller *model.User, id string) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
