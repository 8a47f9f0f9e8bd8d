// Package checkout submits a completed draft to the booking backend. One
// submission per session at a time; success clears the draft and keeps the
// merged receipt, failure leaves the draft untouched for a retry.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/draft"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/service/funnel"
	"github.com/precisionto/funnel-go/internal/upstream"
	"github.com/precisionto/funnel-go/internal/wizard"
)

const submitTimeout = 30 * time.Second

// BookingCreator is the upstream booking creation call.
type BookingCreator interface {
	CreateBooking(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error)
}

// DraftSource is the funnel surface checkout needs: read the draft, hold
// the single-submission lock, and confirm on success.
type DraftSource interface {
	Snapshot(ctx context.Context, sessionID string) domain.Draft
	BeginSubmit(ctx context.Context, sessionID string) error
	EndSubmit(sessionID string)
	Confirm(ctx context.Context, sessionID string, receipt domain.Booking) funnel.State
}

type Service struct {
	creator BookingCreator
	drafts  DraftSource
	cache   *redisrepo.Cache // optional, for availability invalidation
	logger  *slog.Logger
}

func New(creator BookingCreator, drafts DraftSource, cache *redisrepo.Cache, logger *slog.Logger) *Service {
	return &Service{
		creator: creator,
		drafts:  drafts,
		cache:   cache,
		logger:  logger,
	}
}

// Submit posts the session's draft to the backend.
//
// Returns funnel.ErrSubmissionInFlight when a prior submission has not
// settled, ErrIncompleteDraft when the draft fails the final gate, and
// ErrTimeout when the backend does not answer within the deadline. Any
// other upstream error is returned verbatim so its message reaches the
// user.
func (s *Service) Submit(ctx context.Context, sessionID string) (funnel.State, error) {
	d := s.drafts.Snapshot(ctx, sessionID)
	if !wizard.ReadyToSubmit(d) {
		return funnel.State{}, ErrIncompleteDraft
	}

	if err := s.drafts.BeginSubmit(ctx, sessionID); err != nil {
		return funnel.State{}, err
	}
	defer s.drafts.EndSubmit(sessionID)

	payload := upstream.BuildPayload(d, draft.TotalPrice(d))

	sctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	booking, err := s.creator.CreateBooking(sctx, payload)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("checkout timed out", "session_id", sessionID)
			return funnel.State{}, ErrTimeout
		}
		return funnel.State{}, err
	}

	receipt := mergeReceipt(d, booking)
	st := s.drafts.Confirm(ctx, sessionID, receipt)

	s.invalidateAvailability(ctx, d.SelectedDate)

	s.logger.Info("booking confirmed",
		"session_id", sessionID,
		"booking_id", receipt.ID,
		"total_price", receipt.TotalPrice,
	)

	return st, nil
}

// mergeReceipt lays the backend's booking over the local draft snapshot.
// Backend fields win; draft values only fill what the backend omitted.
func mergeReceipt(d domain.Draft, b domain.Booking) domain.Booking {
	if b.Status == "" {
		b.Status = domain.BookingPending
	}
	if b.CustomerInfo == (domain.CustomerInfo{}) {
		b.CustomerInfo = d.CustomerInfo
	}
	if b.VehicleInfo == (domain.VehicleInfo{}) {
		b.VehicleInfo = d.VehicleInfo
	}
	if len(b.SelectedServices) == 0 {
		b.SelectedServices = d.SelectedServices
	}
	if len(b.SelectedAddons) == 0 {
		b.SelectedAddons = d.SelectedAddons
	}
	if b.TotalPrice == 0 {
		b.TotalPrice = draft.TotalPrice(d)
	}
	if b.StartAt.IsZero() && d.StartAt != nil {
		b.StartAt = *d.StartAt
	}
	if b.Notes == "" {
		b.Notes = d.CustomerInfo.Notes
	}
	if b.Address == "" {
		b.Address = d.CustomerInfo.Address
	}
	return b
}

// invalidateAvailability drops the cached slot list for the booked date so
// the next query reflects the new booking.
func (s *Service) invalidateAvailability(ctx context.Context, date string) {
	if s.cache == nil || date == "" {
		return
	}
	if err := s.cache.InvalidateAvailability(ctx, date); err != nil {
		s.logger.Warn("availability invalidation failed", "date", date, "error", err)
	}
}
