package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockBabysitterRepository struct {
	mock.Mock
}

func (m *MockBabysitterRepository) List(ctx context.Context, familyID string) ([]model.Babysitter, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Babysitter), args.Error(1)
}

func (m *MockBabysitterRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.Babysitter, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Babysitter), args.Error(1)
}

func (m *MockBabysitterRepository) Create(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Babysitter), args.Error(1)
}

func (m *MockBabysitterRepository) Update(ctx context.Context, b *model.Babysitter) (*model.Babysitter, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Babysitter), args.Error(1)
}

func (m *MockBabysitterRepository) Unlink(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
