package mocks

import (
	"context"

	"coparent/internal/notify"

	"github.com/stretchr/testify/mock"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, e notify.Email) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendSMS(ctx context.Context, phone, text string) error {
	args := m.Called(ctx, phone, text)
	return args.Error(0)
}

func (m *MockMessenger) Push(ctx context.Context, endpointARN string, p notify.Push) error {
	args := m.Called(ctx, endpointARN, p)
	return args.Error(0)
}

func (m *MockMessenger) RegisterDevice(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type MockChatRegistrar struct {
	mock.Mock
}

func (m *MockChatRegistrar) RegisterGroup(ctx context.Context, g notify.ChatGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}
