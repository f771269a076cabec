package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMedicationService struct {
	mock.Mock
}

func (m *MockMedicationService) List(ctx context.Context, caller *model.User, q service.MedicationQuery) (*service.MedicationPage, error) {
	args := m.Called(ctx, caller, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MedicationPage), args.Error(1)
}

func (m *MockMedicationService) Get(ctx context.Context, caller *model.User, id int64) (*model.Medication, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) Create(ctx context.Context, caller *model.User, in service.MedicationInput) (*model.Medication, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) Update(ctx context.Context, caller *model.User, id int64, patch service.MedicationPatch) (*model.Medication, error) {
	args := m.Called(ctx, caller, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

func (m *MockMedicationService) Reminders(ctx context.Context, caller *model.User) (*service.MedicationReminders, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MedicationReminders), args.Error(1)
}
