package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockGroupChatService struct {
	mock.Mock
}

func (m *MockGroupChatService) CreateOrGet(ctx context.Context, caller *model.User, in service.GroupChatInput) (*service.GroupChatResult, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupChatResult), args.Error(1)
}
