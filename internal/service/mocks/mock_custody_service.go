package mocks

import (
	"context"

	"coparent/internal/model"
	"coparent/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCustodyService struct {
	mock.Mock
}

func (m *MockCustodyService) Month(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error) {
	args := m.Called(ctx, caller, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyService) Handoffs(ctx context.Context, caller *model.User, year, month int) ([]model.CustodyRecord, error) {
	args := m.Called(ctx, caller, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyService) Create(ctx context.Context, caller *model.User, in service.CustodyInput) (*model.CustodyRecord, error) {
	args := m.Called(ctx, caller, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyService) Update(ctx context.Context, caller *model.User, date model.Date, in service.CustodyInput) (*model.CustodyRecord, error) {
	args := m.Called(ctx, caller, date, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustodyRecord), args.Error(1)
}

func (m *MockCustodyService) Bulk(ctx context.Context, caller *model.User, in []service.CustodyInput) (int, error) {
	args := m.Called(ctx, caller, in)
	return args.Int(0), args.Error(1)
}
