package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockEmergencyContactService struct {
	mock.Mock
}

func (m *MockEmergencyContactService) List(ctx context.Context, caller *model.User) ([]model.EmergencyContact, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactService) Create(ctx context.Context, caller *model.User, in service.EmergencyContactInput) (*model.EmergencyContact, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactService) Update(ctx context.Context, caller *model.User, id int64, in service.EmergencyContactInput) (*model.EmergencyContact, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
