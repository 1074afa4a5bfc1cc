package model

import "time"

// Subscription tiers. The tier gates the monthly credit allowance; feature
// gating beyond the credit balance happens client-side.
const (
	TierFree    = "free"
	TierBasic   = "basic"
	TierPremium = "premium"
)

// Profile represents a user account with its credit balance.
// This is a pure domain model with no database-specific dependencies or tags.
// Credits never go negative; every debit is tied to one completed unit of work.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Credits      int       `json:"credits"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
}
