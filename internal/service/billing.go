package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"humanizerapi/internal/model"
	"humanizerapi/internal/repository"
)

// Plan is a purchasable subscription tier with its monthly credit allowance.
type Plan struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}

// Plans lists the purchasable tiers, in ascending order of allowance.
var Plans = []Plan{
	{ID: model.TierFree, Name: "Free", Credits: 100},
	{ID: model.TierBasic, Name: "Basic", Credits: 500},
	{ID: model.TierPremium, Name: "Premium", Credits: 2000},
}

// PurchaseResult is the outcome of a plan purchase.
type PurchaseResult struct {
	Balance int    `json:"balance"`
	Tier    string `json:"tier"`
}

// BillingService applies plan purchases to the credit ledger. Payment
// processing itself happens outside this service; a purchase here is the
// post-payment credit grant.
type BillingService interface {
	// Purchase credits the user with the plan's allowance and moves them to
	// the plan's tier. ErrUnknownPlan for an unrecognized plan id.
	Purchase(ctx context.Context, userID, planID string) (*PurchaseResult, error)
}

type billingService struct {
	profiles repository.ProfileRepository
}

// NewBillingService constructs a BillingService.
func NewBillingService(profiles repository.ProfileRepository) BillingService {
	return &billingService{profiles: profiles}
}

func (s *billingService) Purchase(ctx context.Context, userID, planID string) (*PurchaseResult, error) {
	var plan *Plan
	for i := range Plans {
		if Plans[i].ID == planID {
			plan = &Plans[i]
			break
		}
	}
	if plan == nil {
		return nil, ErrUnknownPlan
	}

	balance, err := s.profiles.AddCredits(ctx, userID, plan.Credits, plan.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("apply purchase: %w", err)
	}
	return &PurchaseResult{Balance: balance, Tier: plan.ID}, nil
}
