package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"humanizerapi/internal/humanizer"
	"humanizerapi/internal/model"
	"humanizerapi/internal/service"
)

type MockHumanizeService struct {
	mock.Mock
}

func (m *MockHumanizeService) Humanize(ctx context.Context, userID, text string, opts humanizer.SubmitRequest) (*service.HumanizeResult, error) {
	args := m.Called(ctx, userID, text, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HumanizeResult), args.Error(1)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Save(ctx context.Context, userID, title, original, humanized string) (*model.Project, int, error) {
	args := m.Called(ctx, userID, title, original, humanized)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*model.Project), args.Int(1), args.Error(2)
}

func (m *MockProjectService) List(ctx context.Context, userID string, limit, offset int) (*service.ProjectListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProjectListResult), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, userID string, r io.Reader, name, contentType string, size int64) (*model.File, int, error) {
	args := m.Called(ctx, userID, r, name, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*model.File), args.Int(1), args.Error(2)
}

func (m *MockFileService) List(ctx context.Context, userID string, limit, offset int) (*service.FileListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileListResult), args.Error(1)
}

func (m *MockFileService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	args := m.Called(ctx, userID, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, email, password, name string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) Purchase(ctx context.Context, userID, planID string) (*service.PurchaseResult, error) {
	args := m.Called(ctx, userID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PurchaseResult), args.Error(1)
}
