package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, user_id, name, size, content_type, storage_path, created_at`

// CreateWithDebit inserts the file record and charges the owner in one transaction.
func (r *FilePostgres) CreateWithDebit(ctx context.Context, f *model.File, cost int) (*model.File, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance int
	err = tx.QueryRowContext(ctx, debitQuery, f.UserID, cost).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, repository.ErrInsufficientCredits
	}
	if err != nil {
		return nil, 0, fmt.Errorf("debit credits: %w", err)
	}

	const q = `
		INSERT INTO files (id, user_id, name, size, content_type, storage_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns
	row := tx.QueryRowContext(ctx, q,
		f.ID,
		f.UserID,
		f.Name,
		f.Size,
		f.ContentType,
		f.StoragePath,
		f.CreatedAt,
	)
	var out model.File
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.Name,
		&out.Size,
		&out.ContentType,
		&out.StoragePath,
		&out.CreatedAt,
	); err != nil {
		return nil, 0, fmt.Errorf("insert file: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit tx: %w", err)
	}
	return &out, balance, nil
}

// FindByID fetches a single file record by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.Size,
		&f.ContentType,
		&f.StoragePath,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListByUser returns the user's files using LIMIT/OFFSET pagination and a total count.
func (r *FilePostgres) ListByUser(ctx context.Context, userID string, pq repository.PageQuery) (*repository.PageResult[model.File], error) {
	const qCount = `SELECT COUNT(*) FROM files WHERE user_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, userID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, userID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		var f model.File
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Name,
			&f.Size,
			&f.ContentType,
			&f.StoragePath,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.File]{Items: items, Total: total}, nil
}

// Delete removes a file record by ID scoped to the owning user.
func (r *FilePostgres) Delete(ctx context.Context, id, userID string) error {
	const q = `DELETE FROM files WHERE id = $1 AND user_id = $2`
	_, err := r.db.ExecContext(ctx, q, id, userID)
	return err
}
