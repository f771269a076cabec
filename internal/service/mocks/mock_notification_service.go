package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, caller *model.User) ([]model.NotificationEmail, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationService) Add(ctx context.Context, caller *model.User, in service.NotificationEmailInput) (*model.NotificationEmail, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationService) Update(ctx context.Context, caller *model.User, id int64, in service.NotificationEmailInput) (*model.NotificationEmail, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationEmail), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
