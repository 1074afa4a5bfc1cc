package humanizer

import (
	"context"
	"fmt"
	"time"
)

// Poller waits for a submitted job to reach a terminal state. It is a plain
// attempt-counter loop with a fixed delay between polls; the delay suspends
// only the calling goroutine. Cancelling the context stops the loop before
// the next attempt is scheduled; an in-flight request is allowed to finish
// and its result is discarded with the ctx error.
type Poller struct {
	client      Client
	interval    time.Duration
	maxAttempts int
}

// NewPoller creates a Poller over the given client.
func NewPoller(client Client, interval time.Duration, maxAttempts int) *Poller {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Poller{client: client, interval: interval, maxAttempts: maxAttempts}
}

// AwaitCompletion polls the job until it is terminal or attempts run out.
// Each attempt checks, in order: an explicit output ends the wait with that
// output; an explicit remote error ends it with ErrJobFailed carrying the
// reason; otherwise the next attempt is scheduled. Exhausted attempts yield
// ErrTimedOut.
func (p *Poller) AwaitCompletion(ctx context.Context, jobID string) (string, error) {
	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}

		st, err := p.client.Document(ctx, jobID)
		if err != nil {
			return "", err
		}
		if st.Output != "" {
			return st.Output, nil
		}
		if st.Error != "" {
			return "", fmt.Errorf("%w: %s", ErrJobFailed, st.Error)
		}

		timer.Reset(p.interval)
	}

	return "", ErrTimedOut
}
