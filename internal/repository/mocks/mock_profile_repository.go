package mocks

import (
	"context"

	"humanizerapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) Credits(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) TryDebit(ctx context.Context, id string, amount int) (int, error) {
	args := m.Called(ctx, id, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockProfileRepository) AddCredits(ctx context.Context, id string, amount int, tier string) (int, error) {
	args := m.Called(ctx, id, amount, tier)
	return args.Int(0), args.Error(1)
}
