package postgres

import (
	"context"
	"database/sql"
	"errors"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, email, name, password_hash, credits, tier, created_at`

func scanProfile(row *sql.Row) (*model.Profile, error) {
	var p model.Profile
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.PasswordHash,
		&p.Credits,
		&p.Tier,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new profile row and returns the stored record.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO profiles (id, email, name, password_hash, credits, tier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Email,
		p.Name,
		p.PasswordHash,
		p.Credits,
		p.Tier,
		p.CreatedAt,
	)
	return scanProfile(row)
}

// FindByID fetches a single profile by its ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single profile by email.
func (r *ProfilePostgres) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, email))
}

// Credits reads the current balance straight from the row.
func (r *ProfilePostgres) Credits(ctx context.Context, id string) (int, error) {
	const q = `SELECT credits FROM profiles WHERE id = $1`
	var credits int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&credits); err != nil {
		return 0, err
	}
	return credits, nil
}

// TryDebit performs a conditional decrement in a single statement. The WHERE
// clause makes the balance check and the decrement one atomic operation, so a
// concurrent debit cannot observe a stale balance.
func (r *ProfilePostgres) TryDebit(ctx context.Context, id string, amount int) (int, error) {
	const q = `
		UPDATE profiles
		SET credits = credits - $2
		WHERE id = $1 AND credits >= $2
		RETURNING credits
	`
	var balance int
	err := r.db.QueryRowContext(ctx, q, id, amount).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		// Either the profile is missing or the balance is below amount;
		// distinguish so callers can report NotFound separately.
		if _, crErr := r.Credits(ctx, id); crErr != nil {
			return 0, crErr
		}
		return 0, repository.ErrInsufficientCredits
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// AddCredits increments the balance and optionally updates the tier.
func (r *ProfilePostgres) AddCredits(ctx context.Context, id string, amount int, tier string) (int, error) {
	const q = `
		UPDATE profiles
		SET credits = credits + $2,
		    tier = CASE WHEN $3 = '' THEN tier ELSE $3 END
		WHERE id = $1
		RETURNING credits
	`
	var balance int
	if err := r.db.QueryRowContext(ctx, q, id, amount, tier).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}
