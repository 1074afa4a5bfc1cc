package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
	repoMocks "humanizerapi/internal/repository/mocks"
	"humanizerapi/internal/storage"
	storeMocks "humanizerapi/internal/storage/mocks"
)

const uploadCost = 25

func newFileService(store *storeMocks.MockStorage, files *repoMocks.MockFileRepository, profiles *repoMocks.MockProfileRepository) FileService {
	return NewFileService(store, files, profiles, uploadCost)
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path spends the balance", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		r := strings.NewReader("%PDF-")
		profiles.On("Credits", ctx, "user-1").Return(25, nil)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "files/user-1/") && strings.HasSuffix(key, ".pdf")
		}), r, storage.PutObjectOptions{
			Size:        10 << 20,
			ContentType: "application/pdf",
			Metadata:    map[string]string{storage.MetaOriginalFilename: "report.pdf"},
		}).Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
			return storage.ObjectInfo{Key: key, Size: opt.Size}
		}, nil)
		files.On("CreateWithDebit", ctx, mock.MatchedBy(func(f *model.File) bool {
			return f.UserID == "user-1" && f.Name == "report.pdf" && f.StoragePath != ""
		}), uploadCost).Return(&model.File{ID: "file-1"}, 0, nil)

		stored, balance, err := svc.Upload(ctx, "user-1", r, "report.pdf", "application/pdf", 10<<20)

		require.NoError(t, err)
		assert.Equal(t, 0, balance)
		assert.NotNil(t, stored)
		store.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	t.Run("insufficient credits stores nothing", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		profiles.On("Credits", ctx, "user-1").Return(0, nil)

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "a.pdf", "application/pdf", 1024)

		assert.ErrorIs(t, err, ErrInsufficientCredits)
		// The object store was never touched.
		store.AssertNumberOfCalls(t, "Put", 0)
		files.AssertNotCalled(t, "CreateWithDebit")
	})

	t.Run("oversized file rejected before any call", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "big.pdf", "application/pdf", MaxFileSize+1)

		assert.ErrorIs(t, err, ErrFileTooLarge)
		profiles.AssertNotCalled(t, "Credits")
		store.AssertNumberOfCalls(t, "Put", 0)
	})

	t.Run("disallowed type rejected before any call", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "run.exe", "application/x-msdownload", 1024)

		assert.ErrorIs(t, err, ErrFileType)
		store.AssertNumberOfCalls(t, "Put", 0)
	})

	t.Run("record failure cleans up the orphan object", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		profiles.On("Credits", ctx, "user-1").Return(100, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "files/user-1/x.pdf", Size: 1024}, nil)
		files.On("CreateWithDebit", ctx, mock.Anything, uploadCost).
			Return(nil, 0, errors.New("db fail"))
		store.On("Delete", ctx, mock.Anything).Return(nil)

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "x.pdf", "application/pdf", 1024)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrStorageInconsistent)
		store.AssertCalled(t, "Delete", ctx, mock.Anything)
	})

	t.Run("failed cleanup surfaces an inconsistency", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		profiles.On("Credits", ctx, "user-1").Return(100, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "files/user-1/x.pdf", Size: 1024}, nil)
		files.On("CreateWithDebit", ctx, mock.Anything, uploadCost).
			Return(nil, 0, errors.New("db fail"))
		store.On("Delete", ctx, mock.Anything).Return(errors.New("storage down"))

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "x.pdf", "application/pdf", 1024)

		assert.ErrorIs(t, err, ErrStorageInconsistent)
	})

	t.Run("race to the transactional debit never charges", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		// The precheck passes but the balance is spent concurrently before
		// the transactional debit; the stored object is removed again.
		profiles.On("Credits", ctx, "user-1").Return(25, nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "files/user-1/x.pdf", Size: 1024}, nil)
		files.On("CreateWithDebit", ctx, mock.Anything, uploadCost).
			Return(nil, 0, repository.ErrInsufficientCredits)
		store.On("Delete", ctx, mock.Anything).Return(nil)

		_, _, err := svc.Upload(ctx, "user-1", strings.NewReader("x"), "x.pdf", "application/pdf", 1024)

		assert.ErrorIs(t, err, ErrInsufficientCredits)
		store.AssertCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestFileService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("object then record", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		files.On("FindByID", ctx, "file-1").Return(&model.File{ID: "file-1", UserID: "user-1", StoragePath: "files/user-1/a.pdf"}, nil)
		store.On("Delete", ctx, "files/user-1/a.pdf").Return(nil)
		files.On("Delete", ctx, "file-1", "user-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "user-1", "file-1"))
		store.AssertExpectations(t)
		files.AssertExpectations(t)
	})

	t.Run("object removal failure keeps the record", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		files.On("FindByID", ctx, "file-1").Return(&model.File{ID: "file-1", UserID: "user-1", StoragePath: "p"}, nil)
		store.On("Delete", ctx, "p").Return(errors.New("storage down"))

		err := svc.Delete(ctx, "user-1", "file-1")

		assert.Error(t, err)
		files.AssertNotCalled(t, "Delete", ctx, "file-1", "user-1")
	})

	t.Run("record removal failure surfaces inconsistency", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		files.On("FindByID", ctx, "file-1").Return(&model.File{ID: "file-1", UserID: "user-1", StoragePath: "p"}, nil)
		store.On("Delete", ctx, "p").Return(nil)
		files.On("Delete", ctx, "file-1", "user-1").Return(errors.New("db fail"))

		err := svc.Delete(ctx, "user-1", "file-1")

		assert.ErrorIs(t, err, ErrStorageInconsistent)
	})

	t.Run("foreign file looks missing", func(t *testing.T) {
		store := new(storeMocks.MockStorage)
		files := new(repoMocks.MockFileRepository)
		profiles := new(repoMocks.MockProfileRepository)
		svc := newFileService(store, files, profiles)

		files.On("FindByID", ctx, "file-1").Return(&model.File{ID: "file-1", UserID: "someone-else", StoragePath: "p"}, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "user-1", "file-1"), ErrNotFound)
		store.AssertNumberOfCalls(t, "Delete", 0)
	})
}

func TestFileService_DownloadURL(t *testing.T) {
	ctx := context.Background()
	store := new(storeMocks.MockStorage)
	files := new(repoMocks.MockFileRepository)
	profiles := new(repoMocks.MockProfileRepository)
	svc := newFileService(store, files, profiles)

	files.On("FindByID", ctx, "file-1").Return(&model.File{ID: "file-1", UserID: "user-1", StoragePath: "files/user-1/a.pdf"}, nil)
	store.On("PresignGet", ctx, "files/user-1/a.pdf", mock.Anything).Return("https://signed.example/a.pdf", nil)

	url, err := svc.DownloadURL(ctx, "user-1", "file-1")

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/a.pdf", url)
}
