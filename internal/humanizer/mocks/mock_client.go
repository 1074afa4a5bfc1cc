package mocks

import (
	"context"

	"humanizerapi/internal/humanizer"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Submit(ctx context.Context, req humanizer.SubmitRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockClient) Document(ctx context.Context, jobID string) (*humanizer.JobStatus, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*humanizer.JobStatus), args.Error(1)
}
