package humanizer

import (
	"context"
	"errors"
)

// Package humanizer talks to the external text transformation service. A
// humanize call is a two-step protocol: submit the text and receive an opaque
// job id, then poll the job until it carries an output or an error. The
// service gives no latency bound, so polling is bounded by attempts.

var (
	// ErrUpstream marks any failure of the remote service itself: non-2xx
	// responses, malformed bodies, transport errors.
	ErrUpstream = errors.New("humanizer upstream error")

	// ErrJobFailed is returned when the remote job reports an explicit error.
	// The remote reason is wrapped alongside.
	ErrJobFailed = errors.New("humanize job failed")

	// ErrTimedOut is returned when polling attempts are exhausted with
	// neither an output nor an error from the remote job.
	ErrTimedOut = errors.New("timed out waiting for humanized output")
)

// Default submission parameters, matching what the service expects for
// general-purpose rewriting.
const (
	DefaultReadability = "High School"
	DefaultPurpose     = "General Writing"
	DefaultStrength    = "More Human"
	DefaultModel       = "v11"
)

// SubmitRequest carries the text and tuning parameters for a humanize job.
type SubmitRequest struct {
	Content     string `json:"content"`
	Readability string `json:"readability"`
	Purpose     string `json:"purpose"`
	Strength    string `json:"strength"`
	Model       string `json:"model"`
}

// ApplyDefaults fills empty tuning parameters in place.
func (r *SubmitRequest) ApplyDefaults() {
	if r.Readability == "" {
		r.Readability = DefaultReadability
	}
	if r.Purpose == "" {
		r.Purpose = DefaultPurpose
	}
	if r.Strength == "" {
		r.Strength = DefaultStrength
	}
	if r.Model == "" {
		r.Model = DefaultModel
	}
}

// JobStatus is one observation of a remote job. Output and Error are both
// empty while the job is still running; at most one of them is ever set.
type JobStatus struct {
	Output string `json:"output"`
	Error  string `json:"error"`
}

// Client submits jobs to the transformation service and reads their status.
// Both calls are single outbound network requests with no local state.
type Client interface {
	// Submit sends the text for humanization and returns the remote job id.
	Submit(ctx context.Context, req SubmitRequest) (string, error)

	// Document reads the current status of a job by id.
	Document(ctx context.Context, jobID string) (*JobStatus, error)
}
