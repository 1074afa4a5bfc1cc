package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"humanizerapi/internal/humanizer"
	"humanizerapi/internal/repository"
)

// MinTextLength is the minimum input length in characters for a humanize
// call. Input of exactly this length is accepted.
const MinTextLength = 50

// HumanizeResult is the outcome of a successful humanize call. Uncharged is
// set when the output was obtained but the debit could not be confirmed; the
// caller should treat Balance as possibly stale in that case.
type HumanizeResult struct {
	Output    string `json:"output"`
	Balance   int    `json:"balance"`
	Uncharged bool   `json:"uncharged,omitempty"`
}

// HumanizeService runs the credit-metered humanize cycle: validate, check
// credits, submit, poll, and reconcile the balance only on confirmed output.
type HumanizeService interface {
	// Humanize submits text to the transformation service and waits for the
	// result. Credits are debited after the output is confirmed, never
	// before; failed or timed-out jobs cost nothing. A non-nil result with
	// ErrReconciliation means the output arrived but the debit did not.
	Humanize(ctx context.Context, userID, text string, opts humanizer.SubmitRequest) (*HumanizeResult, error)
}

type humanizeService struct {
	profiles repository.ProfileRepository
	client   humanizer.Client
	poller   *humanizer.Poller
	cost     int
}

// NewHumanizeService constructs a HumanizeService charging cost credits per
// successful call.
func NewHumanizeService(profiles repository.ProfileRepository, client humanizer.Client, poller *humanizer.Poller, cost int) HumanizeService {
	return &humanizeService{profiles: profiles, client: client, poller: poller, cost: cost}
}

func (s *humanizeService) Humanize(ctx context.Context, userID, text string, opts humanizer.SubmitRequest) (*HumanizeResult, error) {
	// Validating: terminal on failure, nothing has happened yet.
	if utf8.RuneCountInString(text) < MinTextLength {
		return nil, ErrTextTooShort
	}

	// CreditChecking: the balance is re-fetched from the store, never taken
	// from a cache, so a balance spent elsewhere is seen here. Insufficient
	// balance means no remote call is made at all.
	balance, err := s.profiles.Credits(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read balance: %w", err)
	}
	if balance < s.cost {
		return nil, ErrInsufficientCredits
	}

	// Submitting: one outbound call; upstream failures surface verbatim and
	// no credit has been touched.
	opts.Content = text
	jobID, err := s.client.Submit(ctx, opts)
	if err != nil {
		return nil, err
	}

	// Polling: a failed or timed-out job must not cost the user credits, so
	// any error here ends the cycle before the debit.
	output, err := s.poller.AwaitCompletion(ctx, jobID)
	if err != nil {
		return nil, err
	}

	// Reconciling: charge only after confirmed output. If the debit fails
	// the transformation has already happened, so the output is returned
	// anyway, flagged as uncharged, with a distinct error.
	newBalance, err := s.profiles.TryDebit(ctx, userID, s.cost)
	if err != nil {
		return &HumanizeResult{Output: output, Balance: balance, Uncharged: true},
			fmt.Errorf("%w: %v", ErrReconciliation, err)
	}

	return &HumanizeResult{Output: output, Balance: newBalance}, nil
}
