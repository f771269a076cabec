package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMedicalProviderService struct {
	mock.Mock
}

func (m *MockMedicalProviderService) List(ctx context.Context, caller *model.User, q service.MedicalProviderQuery) (*service.MedicalProviderPage, error) {
	args := m.Called(ctx, caller, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MedicalProviderPage), args.Error(1)
}

func (m *MockMedicalProviderService) Search(ctx context.Context, caller *model.User, q service.MedicalProviderQuery) (*service.MedicalProviderPage, error) {
	args := m.Called(ctx, caller, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MedicalProviderPage), args.Error(1)
}

func (m *MockMedicalProviderService) Get(ctx context.Context, caller *model.User, id int64) (*model.MedicalProvider, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderService) Create(ctx context.Context, caller *model.User, in service.MedicalProviderInput) (*model.MedicalProvider, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderService) Update(ctx context.Context, caller *model.User, id int64, patch service.MedicalProviderPatch) (*model.MedicalProvider, error) {
	args := m.Called(ctx, caller, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalProvider), args.Error(1)
}

func (m *MockMedicalProviderService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
