package repository

import (
	"context"

	"humanizerapi/internal/model"
)

// ProfileRepository is the credit ledger accessor. It defines persistence for
// user profiles and all credit balance mutations using SQL queries only.
//
// Debits are conditional single statements so that two concurrent debits can
// never both succeed against a balance that covers only one. Callers must not
// cache balances across a debit decision; Credits always reads the
// authoritative value.
type ProfileRepository interface {
	// Create inserts a new profile row with the caller-provided starting
	// balance and tier. Returns the stored profile.
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// FindByID returns a profile by its ID. sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Profile, error)

	// FindByEmail returns a profile by email. sql.ErrNoRows when absent.
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)

	// Credits returns the current authoritative balance, never a cached one.
	Credits(ctx context.Context, id string) (int, error)

	// TryDebit atomically decrements the balance by amount and returns the
	// new balance. ErrInsufficientCredits when the balance does not cover the
	// amount; the row is untouched in that case.
	TryDebit(ctx context.Context, id string, amount int) (int, error)

	// AddCredits increments the balance by amount, optionally moving the
	// profile to a new tier (empty tier leaves it unchanged). Returns the new
	// balance.
	AddCredits(ctx context.Context, id string, amount int, tier string) (int, error)
}
