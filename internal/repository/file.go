package repository

import (
	"context"

	"humanizerapi/internal/model"
)

// FileRepository defines data access for uploaded file metadata.
// No business logic here — strictly persistence operations.
type FileRepository interface {
	// CreateWithDebit inserts the file record and debits cost credits from
	// the owner inside a single transaction. ErrInsufficientCredits rolls
	// both back. Returns the stored record and the owner's new balance.
	CreateWithDebit(ctx context.Context, f *model.File, cost int) (*model.File, int, error)

	// FindByID returns a file record by its ID.
	FindByID(ctx context.Context, id string) (*model.File, error)

	// ListByUser returns the user's files ordered by creation time
	// descending, with a total count.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.File], error)

	// Delete removes a file record by ID scoped to the owning user.
	Delete(ctx context.Context, id, userID string) error
}
