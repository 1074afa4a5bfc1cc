package repository

import (
	"context"

	"humanizerapi/internal/model"
)

// ProjectRepository defines data access for saved projects.
// No business logic here — strictly persistence operations.
type ProjectRepository interface {
	// CreateWithDebit inserts the project and debits cost credits from the
	// owner inside a single transaction. The record and the debit are not
	// observably separable: ErrInsufficientCredits rolls both back.
	// Returns the stored project and the owner's new balance.
	CreateWithDebit(ctx context.Context, p *model.Project, cost int) (*model.Project, int, error)

	// FindByID returns a project by its ID.
	FindByID(ctx context.Context, id string) (*model.Project, error)

	// ListByUser returns the user's projects ordered by creation time
	// descending, with a total count.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Project], error)

	// Delete removes a project by ID scoped to the owning user. It returns
	// nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id, userID string) error
}
