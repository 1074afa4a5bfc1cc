package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repoMocks "humanizerapi/internal/repository/mocks"
)

func TestBillingService_Purchase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		planID      string
		wantCredits int
	}{
		{name: "basic plan", planID: "basic", wantCredits: 500},
		{name: "premium plan", planID: "premium", wantCredits: 2000},
		{name: "free plan", planID: "free", wantCredits: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := new(repoMocks.MockProfileRepository)
			svc := NewBillingService(profiles)

			profiles.On("AddCredits", ctx, "user-1", tt.wantCredits, tt.planID).
				Return(40+tt.wantCredits, nil)

			res, err := svc.Purchase(ctx, "user-1", tt.planID)

			require.NoError(t, err)
			assert.Equal(t, 40+tt.wantCredits, res.Balance)
			assert.Equal(t, tt.planID, res.Tier)
			profiles.AssertExpectations(t)
		})
	}

	t.Run("unknown plan", func(t *testing.T) {
		profiles := new(repoMocks.MockProfileRepository)
		svc := NewBillingService(profiles)

		_, err := svc.Purchase(ctx, "user-1", "enterprise")

		assert.ErrorIs(t, err, ErrUnknownPlan)
		profiles.AssertNotCalled(t, "AddCredits")
	})

	t.Run("missing profile", func(t *testing.T) {
		profiles := new(repoMocks.MockProfileRepository)
		svc := NewBillingService(profiles)

		profiles.On("AddCredits", ctx, "gone", 500, "basic").Return(0, sql.ErrNoRows)

		_, err := svc.Purchase(ctx, "gone", "basic")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
