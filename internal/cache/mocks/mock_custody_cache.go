package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"coparent/internal/cache"
	"coparent/internal/model"
)

type MockCustodyCache struct {
	mock.Mock
}

func (m *MockCustodyCache) Get(ctx context.Context, view cache.View, familyID string, year int, month time.Month) ([]model.CustodyRecord, bool, error) {
	args := m.Called(ctx, view, familyID, year, month)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.CustodyRecord), args.Bool(1), args.Error(2)
}

func (m *MockCustodyCache) Set(ctx context.Context, view cache.View, familyID string, year int, month time.Month, records []model.CustodyRecord) error {
	args := m.Called(ctx, view, familyID, year, month, records)
	return args.Error(0)
}

func (m *MockCustodyCache) Invalidate(ctx context.Context, familyID string, months ...time.Time) error {
	args := m.Called(ctx, familyID, months)
	return args.Error(0)
}
