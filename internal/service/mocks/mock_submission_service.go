package mocks

import (
	"context"

	"scopeapi/internal/model"
	"scopeapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Submit(ctx context.Context, rec *model.SubmissionRecord) (*model.SubmissionResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionResult), args.Error(1)
}

func (m *MockSubmissionService) List(ctx context.Context, limit, offset int) (*service.SubmissionListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmissionListResult), args.Error(1)
}

func (m *MockSubmissionService) Get(ctx context.Context, id string) (*model.SubmissionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubmissionRecord), args.Error(1)
}
