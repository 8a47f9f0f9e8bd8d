package checkout

import "errors"

var (
	// ErrTimeout is distinct from other submission failures so callers can
	// tell the user the booking may or may not have been created upstream.
	ErrTimeout = errors.New("checkout request timed out")

	ErrIncompleteDraft = errors.New("draft is not ready for checkout")
)
