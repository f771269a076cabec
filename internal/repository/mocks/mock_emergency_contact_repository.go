package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockEmergencyContactRepository struct {
	mock.Mock
}

func (m *MockEmergencyContactRepository) List(ctx context.Context, familyID string) ([]model.EmergencyContact, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.EmergencyContact, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactRepository) Create(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactRepository) Update(ctx context.Context, c *model.EmergencyContact) (*model.EmergencyContact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EmergencyContact), args.Error(1)
}

func (m *MockEmergencyContactRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
