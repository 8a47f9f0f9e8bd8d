package checkout

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/draft"
	"github.com/precisionto/funnel-go/internal/service/funnel"
	"github.com/precisionto/funnel-go/internal/upstream"
)

type fakeCreator struct {
	fn      func(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error)
	payload *upstream.BookingPayload
}

func (c *fakeCreator) CreateBooking(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
	c.payload = &p
	return c.fn(ctx, p)
}

type fakeFunnel struct {
	draft      domain.Draft
	submitting bool
	confirmed  *domain.Booking
}

func (f *fakeFunnel) Snapshot(ctx context.Context, sessionID string) domain.Draft {
	return f.draft
}

func (f *fakeFunnel) BeginSubmit(ctx context.Context, sessionID string) error {
	if f.submitting {
		return funnel.ErrSubmissionInFlight
	}
	f.submitting = true
	return nil
}

func (f *fakeFunnel) EndSubmit(sessionID string) {
	f.submitting = false
}

func (f *fakeFunnel) Confirm(ctx context.Context, sessionID string, receipt domain.Booking) funnel.State {
	f.confirmed = &receipt
	return funnel.State{SessionID: sessionID, LastConfirmed: &receipt}
}

func readyDraft() domain.Draft {
	d := draft.New(time.Now())
	d = draft.SetVehicleType(d, "sedan")
	d = draft.ToggleService(d, domain.LineItem{ID: "svc", Title: "Full Detail", Price: 150, Quantity: 1})
	d = draft.SetCustomerInfo(d, domain.CustomerInfo{
		Name: "Dana", Email: "dana@example.com", Phone: "555-0100",
		Address: "1 Main St", Notes: "gate code 4321",
	})
	d = draft.SetVehicleInfo(d, domain.VehicleInfo{Make: "Honda", Model: "Civic", Year: "2020"})
	d = draft.SetSchedule(d, "2026-09-10", "9:00 AM", time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC))
	return d
}

func TestSubmitIncompleteDraft(t *testing.T) {
	fun := &fakeFunnel{draft: draft.New(time.Now())}
	svc := New(&fakeCreator{}, fun, nil, slog.Default())

	_, err := svc.Submit(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Nil(t, fun.confirmed)
}

func TestSubmitRejectsWhileInFlight(t *testing.T) {
	fun := &fakeFunnel{draft: readyDraft(), submitting: true}
	svc := New(&fakeCreator{}, fun, nil, slog.Default())

	_, err := svc.Submit(context.Background(), "s1")
	assert.ErrorIs(t, err, funnel.ErrSubmissionInFlight)
}

func TestSubmitTimeoutIsDistinct(t *testing.T) {
	fun := &fakeFunnel{draft: readyDraft()}
	creator := &fakeCreator{fn: func(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
		return domain.Booking{}, context.DeadlineExceeded
	}}
	svc := New(creator, fun, nil, slog.Default())

	_, err := svc.Submit(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrTimeout)

	// draft untouched, guard released for a retry
	assert.Nil(t, fun.confirmed)
	assert.False(t, fun.submitting)
}

func TestSubmitBackendErrorVerbatim(t *testing.T) {
	fun := &fakeFunnel{draft: readyDraft()}
	creator := &fakeCreator{fn: func(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
		return domain.Booking{}, &upstream.APIError{Status: 422, Message: "slot already booked"}
	}}
	svc := New(creator, fun, nil, slog.Default())

	_, err := svc.Submit(context.Background(), "s1")
	require.Error(t, err)
	assert.Equal(t, "slot already booked", err.Error())
	assert.Nil(t, fun.confirmed)
}

func TestSubmitMergesBackendOverDraft(t *testing.T) {
	fun := &fakeFunnel{draft: readyDraft()}
	creator := &fakeCreator{fn: func(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
		// sparse backend response: id and status only
		return domain.Booking{ID: "bk-42", Status: domain.BookingConfirmed}, nil
	}}
	svc := New(creator, fun, nil, slog.Default())

	st, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, st.LastConfirmed)

	receipt := *fun.confirmed
	assert.Equal(t, "bk-42", receipt.ID)
	assert.Equal(t, domain.BookingConfirmed, receipt.Status)
	// draft values fill what the backend omitted
	assert.Equal(t, "Dana", receipt.CustomerInfo.Name)
	assert.Equal(t, 150.0, receipt.TotalPrice)
	assert.Equal(t, "1 Main St", receipt.Address)
	assert.Equal(t, "gate code 4321", receipt.Notes)
	require.Len(t, receipt.SelectedServices, 1)
}

func TestSubmitPayloadShape(t *testing.T) {
	fun := &fakeFunnel{draft: readyDraft()}
	creator := &fakeCreator{fn: func(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
		return domain.Booking{ID: "bk-1"}, nil
	}}
	svc := New(creator, fun, nil, slog.Default())

	_, err := svc.Submit(context.Background(), "s1")
	require.NoError(t, err)

	require.NotNil(t, creator.payload)
	p := *creator.payload
	assert.Equal(t, 150.0, p.TotalPrice)
	assert.Equal(t, "1 Main St", p.Address)
	require.Len(t, p.SelectedServices, 1)
	assert.Equal(t, "svc", p.SelectedServices[0].ID)
	assert.False(t, p.StartAt.IsZero())
}
