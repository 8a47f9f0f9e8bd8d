package availability

import "errors"

var (
	ErrInvalidDate     = errors.New("invalid date, want YYYY-MM-DD")
	ErrSlotUnavailable = errors.New("slot is unavailable")
	ErrSlotNotFound    = errors.New("slot not found")
)

// FetchFailedMessage is what the funnel shows when the backend cannot be
// reached; reselecting the date retries.
const FetchFailedMessage = "failed to load availability"
