package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, caller *model.User) (*model.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller *model.User, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) RegisterDevice(ctx context.Context, caller *model.User, in service.DeviceInput) error {
	args := m.Called(ctx, caller, in)
	return args.Error(0)
}

func (m *MockUserService) UploadPhoto(ctx context.Context, caller *model.User, up service.PhotoUpload) (string, error) {
	args := m.Called(ctx, caller, up)
	return args.String(0), args.Error(1)
}
