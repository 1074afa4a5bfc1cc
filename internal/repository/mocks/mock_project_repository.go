package mocks

import (
	"context"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) CreateWithDebit(ctx context.Context, p *model.Project, cost int) (*model.Project, int, error) {
	args := m.Called(ctx, p, cost)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*model.Project), args.Int(1), args.Error(2)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	args := m.Called(ctx, userID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Project]), args.Error(1)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
