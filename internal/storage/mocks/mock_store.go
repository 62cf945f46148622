package mocks

import (
	"context"

	"scopeapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, key string, value any) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, value)
	if f, ok := args.Get(0).(func(context.Context, string, any) storage.ObjectInfo); ok {
		return f(ctx, key, value), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockStore) Get(ctx context.Context, key string, out any) error {
	args := m.Called(ctx, key, out)
	if f, ok := args.Get(0).(func(context.Context, string, any) error); ok {
		return f(ctx, key, out)
	}
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
