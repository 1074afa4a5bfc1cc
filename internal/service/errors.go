package service

import "errors"

// Error taxonomy for the credit-metered flows. Everything before a confirmed
// humanize output is recoverable with no side effect to undo; failures after
// a confirmed output (ErrReconciliation, ErrStorageInconsistent) represent a
// real inconsistency and are surfaced, never swallowed.
var (
	// ErrTextTooShort rejects input below the minimum length. No side effect.
	ErrTextTooShort = errors.New("text must be at least 50 characters long")

	// ErrInsufficientCredits rejects an operation the balance cannot cover.
	// No side effect.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrReconciliation marks a humanize call whose output was obtained but
	// whose credit debit could not be confirmed. The output is still
	// delivered, flagged as uncharged; the caller's balance may be stale.
	ErrReconciliation = errors.New("output obtained but credit debit not confirmed")

	// ErrStorageInconsistent marks a diverged object/metadata pair that
	// needs operator attention.
	ErrStorageInconsistent = errors.New("object storage and metadata are inconsistent")

	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrFileTooLarge       = errors.New("file exceeds the maximum allowed size")
	ErrFileType           = errors.New("file type is not supported")
	ErrUnknownPlan        = errors.New("unknown plan")
	ErrTextRequired       = errors.New("original and humanized text are required")
)
