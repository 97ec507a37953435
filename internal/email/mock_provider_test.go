package email

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Send(ctx context.Context, msg *Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}
