package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockNotificationEmailRepository struct {
	mock.Mock
}

func (m *MockNotificationEmailRepository) List(ctx context.Context, familyID string) ([]model.NotificationEmail, error) {
	args := m.Called(ctx, familyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationEmailRepository) Create(ctx context.Context, familyID, email string) (*model.NotificationEmail, error) {
	args := m.Called(ctx, familyID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationEmailRepository) Update(ctx context.Context, familyID string, id int64, email string) (*model.NotificationEmail, error) {
	args := m.Called(ctx, familyID, id, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationEmailRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
