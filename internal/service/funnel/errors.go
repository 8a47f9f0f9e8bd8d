package funnel

import "errors"

var (
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrNoBookingData      = errors.New("no booking data")
)
