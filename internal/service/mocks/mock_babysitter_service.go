package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockBabysitterService struct {
	mock.Mock
}

func (m *MockBabysitterService) List(ctx context.Context, caller *model.User) ([]model.Babysitter, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Babysitter), args.Error(1)
}

func (m *MockBabysitterService) Create(ctx context.Context, caller *model.User, in service.BabysitterInput) (*model.Babysitter, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Babysitter), args.Error(1)
}

func (m *MockBabysitterService) Update(ctx context.Context, caller *model.User, id int64, in service.BabysitterInput) (*model.Babysitter, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Babysitter), args.Error(1)
}

func (m *MockBabysitterService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
