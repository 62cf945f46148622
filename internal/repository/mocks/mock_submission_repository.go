package mocks

import (
	"context"

	"scopeapi/internal/model"
	"scopeapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, sub *model.Submission) (*model.Submission, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Submission], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Submission]), args.Error(1)
}
