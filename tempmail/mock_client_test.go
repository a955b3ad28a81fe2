package tempmail

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/suaib92/tempmailr/mailtm"
)

// MockMailClient is a hand written mock of the MailClient interface
type MockMailClient struct {
	mock.Mock
}

func (m *MockMailClient) FetchDomains(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMailClient) CreateAccount(ctx context.Context, address, password string) error {
	args := m.Called(ctx, address, password)
	return args.Error(0)
}

func (m *MockMailClient) Login(ctx context.Context, address, password string) (string, error) {
	args := m.Called(ctx, address, password)
	return args.String(0), args.Error(1)
}

func (m *MockMailClient) ListMessages(ctx context.Context, token string) ([]mailtm.MessageSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mailtm.MessageSummary), args.Error(1)
}

func (m *MockMailClient) GetMessage(ctx context.Context, token, id string) (mailtm.MessageDetail, error) {
	args := m.Called(ctx, token, id)
	return args.Get(0).(mailtm.MessageDetail), args.Error(1)
}
