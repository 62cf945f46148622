package mocks

import (
	"context"

	"scopeapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, to, subject, html string) model.EmailOutcome {
	args := m.Called(ctx, to, subject, html)
	return args.Get(0).(model.EmailOutcome)
}
