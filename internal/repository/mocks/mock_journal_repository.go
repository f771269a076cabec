package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) List(ctx context.Context, familyID string, pq repository.PageQuery) (*repository.PageResult[model.JournalEntry], error) {
	args := m.Called(ctx, familyID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.JournalEntry]), args.Error(1)
}

func (m *MockJournalRepository) FindByID(ctx context.Context, familyID string, id int64) (*model.JournalEntry, error) {
	args := m.Called(ctx, familyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) Create(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) Update(ctx context.Context, e *model.JournalEntry) (*model.JournalEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) Delete(ctx context.Context, familyID string, id int64) error {
	args := m.Called(ctx, familyID, id)
	return args.Error(0)
}
