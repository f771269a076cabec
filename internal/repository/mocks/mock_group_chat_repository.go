package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockGroupChatRepository struct {
	mock.Mock
}

func (m *MockGroupChatRepository) Find(ctx context.Context, familyID, contactType string, contactID int64) (*model.GroupChat, error) {
	args := m.Called(ctx, familyID, contactType, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupChat), args.Error(1)
}

func (m *MockGroupChatRepository) Create(ctx context.Context, g *model.GroupChat) (*model.GroupChat, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroupChat), args.Error(1)
}
