package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
	"humanizerapi/internal/storage"
)

// MaxFileSize bounds uploads to 50MB.
const MaxFileSize = 50 << 20

// allowedContentTypes is the upload allow-list: documents and images.
var allowedContentTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// FileListResult is the service-level DTO for paginated files.
type FileListResult struct {
	Items []model.File `json:"data"`
	Total int          `json:"total"`
}

// FileService defines the use cases for user file storage. Uploads cost
// credits, charged atomically with the metadata record; the stored object and
// the record are kept both-present-or-both-absent, and a divergence surfaces
// as ErrStorageInconsistent.
type FileService interface {
	// Upload validates, stores the bytes, records metadata and debits
	// credits. Validation and the credit precheck happen before any network
	// call. Returns the record and the new balance.
	Upload(ctx context.Context, userID string, r io.Reader, name, contentType string, size int64) (*model.File, int, error)

	// List returns the user's files, newest first.
	List(ctx context.Context, userID string, limit, offset int) (*FileListResult, error)

	// DownloadURL returns a time-limited URL for the stored object.
	DownloadURL(ctx context.Context, userID, id string) (string, error)

	// Delete removes the stored object and then the metadata record.
	Delete(ctx context.Context, userID, id string) error
}

type fileService struct {
	store    storage.Storage
	repo     repository.FileRepository
	profiles repository.ProfileRepository
	cost     int
}

// NewFileService constructs a FileService charging cost credits per upload.
func NewFileService(store storage.Storage, repo repository.FileRepository, profiles repository.ProfileRepository, cost int) FileService {
	return &fileService{store: store, repo: repo, profiles: profiles, cost: cost}
}

func (s *fileService) Upload(ctx context.Context, userID string, r io.Reader, name, contentType string, size int64) (*model.File, int, error) {
	if r == nil {
		return nil, 0, fmt.Errorf("reader is nil")
	}
	if size <= 0 || size > MaxFileSize {
		return nil, 0, ErrFileTooLarge
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, 0, ErrFileType
	}

	// Fresh balance precheck so an out-of-credits upload never reaches the
	// object store. The authoritative check is the transactional debit below;
	// this one only avoids storing bytes we would immediately have to remove.
	balance, err := s.profiles.Credits(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("read balance: %w", err)
	}
	if balance < s.cost {
		return nil, 0, ErrInsufficientCredits
	}

	id := uuid.New().String()
	key := filepath.ToSlash(filepath.Join("files", userID, id+filepath.Ext(name)))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			storage.MetaOriginalFilename: name,
		},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("upload to storage: %w", err)
	}

	f := &model.File{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Size:        objInfo.Size,
		ContentType: contentType,
		StoragePath: objInfo.Key,
		CreatedAt:   time.Now().UTC(),
	}
	stored, newBalance, err := s.repo.CreateWithDebit(ctx, f, s.cost)
	if err != nil {
		// The object exists but no record does: remove the orphan so the
		// failure leaves nothing behind. A failed cleanup is a real
		// inconsistency and is surfaced as such.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, 0, fmt.Errorf("%w: create record: %v; orphan cleanup: %v", ErrStorageInconsistent, err, delErr)
		}
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return nil, 0, ErrInsufficientCredits
		}
		return nil, 0, fmt.Errorf("create file record: %w", err)
	}
	return stored, newBalance, nil
}

func (s *fileService) List(ctx context.Context, userID string, limit, offset int) (*FileListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &FileListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *fileService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	f, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, f.StoragePath, 15*time.Minute)
}

func (s *fileService) Delete(ctx context.Context, userID, id string) error {
	f, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return err
	}
	// Object first, then record. An object-store failure keeps the record so
	// the file stays visible and deletable.
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		// The object is gone but the record remains: surface the divergence
		// instead of silently dropping the file from the visible list.
		return fmt.Errorf("%w: object removed but record deletion failed: %v", ErrStorageInconsistent, err)
	}
	return nil
}

func (s *fileService) findOwned(ctx context.Context, userID, id string) (*model.File, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if f.UserID != userID {
		return nil, ErrNotFound
	}
	return f, nil
}
