package mocks

import (
	"context"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) CreateWithDebit(ctx context.Context, f *model.File, cost int) (*model.File, int, error) {
	args := m.Called(ctx, f, cost)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*model.File), args.Int(1), args.Error(2)
}

func (m *MockFileRepository) FindByID(ctx context.Context, id string) (*model.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileRepository) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.File]), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
