package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) List(ctx context.Context, familyID string, f repository.MedicationFilter) (*repository.PageResult[model.Medication], error) {
	args := m.Called(ctx, familyID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Medication]), args.Error(1)
}

func (m *MockMedicationRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.Medication, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationRepository) Create(ctx context.Context, med *model.Medication) (*model.Medication, error) {
	args := m.Called(ctx, med)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationRepository) Update(ctx context.Context, med *model.Medication) (*model.Medication, error) {
	args := m.Called(ctx, med)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medication), args.Error(1)
}

func (m *MockMedicationRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}

func (m *MockMedicationRepository) ListWithReminders(ctx context.Context, familyID string) ([]model.Medication, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}
