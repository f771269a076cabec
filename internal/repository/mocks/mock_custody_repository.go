package mocks

import (
	"context"

	"coparent/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCustodyRepository struct {
	mock.Mock
}

func (m *MockCustodyRepository) ListRange(ctx context.Context, familyID string, from, to model.Date) ([]model.CustodyRecord, error) {
	args := m.Called(ctx, familyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyRepository) FindByDate(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error) {
	args := m.Called(ctx, familyID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyRepository) LastBefore(ctx context.Context, familyID string, d model.Date) (*model.CustodyRecord, error) {
	args := m.Called(ctx, familyID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyRepository) Create(ctx context.Context, r *model.CustodyRecord) (*model.CustodyRecord, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyRepository) Upsert(ctx context.Context, r *model.CustodyRecord) (*model.CustodyRecord, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyRepository) SaveBatch(ctx context.Context, records []model.CustodyRecord, overwrite bool) (int, error) {
	args := m.Called(ctx, records, overwrite)
	return args.Int(0), args.Error(1)
}
