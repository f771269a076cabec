package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) List(ctx context.Context, caller *model.User, page service.Page) (*service.JournalPage, error) {
	args := m.Called(ctx, caller, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JournalPage), args.Error(1)
}

func (m *MockJournalService) Get(ctx context.Context, caller *model.User, id int64) (*model.JournalEntry, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Create(ctx context.Context, caller *model.User, in service.JournalInput) (*model.JournalEntry, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Update(ctx context.Context, caller *model.User, id int64, in service.JournalInput) (*model.JournalEntry, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalService) Delete(ctx context.Context, caller *model.User, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}
