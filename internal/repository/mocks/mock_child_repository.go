package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockChildRepository struct {
	mock.Mock
}

func (m *MockChildRepository) List(ctx context.Context, familyID string) ([]model.Child, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Child), args.Error(1)
}

func (m *MockChildRepository) Create(ctx context.Context, c *model.Child) (*model.Child, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Child), args.Error(1)
}

func (m *MockChildRepository) Update(ctx context.Context, c *model.Child) (*model.Child, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Child), args.Error(1)
}

func (m *MockChildRepository) Delete(ctx context.Context, familyID, id string) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
