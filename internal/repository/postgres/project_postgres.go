package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// ProjectPostgres is a PostgreSQL implementation of repository.ProjectRepository.
type ProjectPostgres struct {
	db *sql.DB
}

// NewProjectPostgres creates a new ProjectPostgres repository.
func NewProjectPostgres(db *sql.DB) *ProjectPostgres {
	return &ProjectPostgres{db: db}
}

var _ repository.ProjectRepository = (*ProjectPostgres)(nil)

const projectColumns = `id, user_id, title, original_text, humanized_text, created_at, updated_at`

// debitQuery is shared by the transactional create paths. The conditional
// WHERE keeps the balance check and the decrement atomic.
const debitQuery = `
	UPDATE profiles
	SET credits = credits - $2
	WHERE id = $1 AND credits >= $2
	RETURNING credits
`

// CreateWithDebit inserts the project and charges the owner in one transaction.
func (r *ProjectPostgres) CreateWithDebit(ctx context.Context, p *model.Project, cost int) (*model.Project, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance int
	err = tx.QueryRowContext(ctx, debitQuery, p.UserID, cost).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, repository.ErrInsufficientCredits
	}
	if err != nil {
		return nil, 0, fmt.Errorf("debit credits: %w", err)
	}

	const q = `
		INSERT INTO projects (id, user_id, title, original_text, humanized_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + projectColumns
	row := tx.QueryRowContext(ctx, q,
		p.ID,
		p.UserID,
		p.Title,
		p.OriginalText,
		p.HumanizedText,
		p.CreatedAt,
		p.UpdatedAt,
	)
	var out model.Project
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.Title,
		&out.OriginalText,
		&out.HumanizedText,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, 0, fmt.Errorf("insert project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit tx: %w", err)
	}
	return &out, balance, nil
}

// FindByID fetches a single project by its ID.
func (r *ProjectPostgres) FindByID(ctx context.Context, id string) (*model.Project, error) {
	const q = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var p model.Project
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.OriginalText,
		&p.HumanizedText,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns the user's projects using LIMIT/OFFSET pagination and a total count.
func (r *ProjectPostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.Project], error) {
	const qCount = `SELECT COUNT(*) FROM projects WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Title,
			&p.OriginalText,
			&p.HumanizedText,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Project]{Items: items, Total: total}, nil
}

// Delete removes a project by ID scoped to the owning user.
func (r *ProjectPostgres) Delete(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM projects WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, q, id, userID)
	return err
}
