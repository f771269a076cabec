package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockMedicalProviderRepository struct {
	mock.Mock
}

func (m *MockMedicalProviderRepository) List(ctx context.Context, familyID string, f repository.MedicalProviderFilter) (*repository.PageResult[model.MedicalProvider], error) {
	args := m.Called(ctx, familyID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.MedicalProvider]), args.Error(1)
}

func (m *MockMedicalProviderRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.MedicalProvider, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderRepository) Create(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderRepository) Update(ctx context.Context, p *model.MedicalProvider) (*model.MedicalProvider, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
