package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL})
}

func TestFetchSlots(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/availability", r.URL.Path)
		assert.Equal(t, "2026-09-10", r.URL.Query().Get("date"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"availableSlots": []map[string]any{
				{"start": "2026-09-10T09:00:00Z", "end": "2026-09-10T10:00:00Z", "booked": false},
				{"start": "2026-09-10T10:00:00Z", "end": "2026-09-10T11:00:00Z", "booked": true},
			},
		})
	})

	slots, err := c.FetchSlots(context.Background(), "2026-09-10")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].Booked)
	assert.True(t, slots[1].Booked)
	assert.NotEmpty(t, slots[0].Label)
}

func TestCreateBookingAcceptsWrappedResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var p BookingPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Dana", p.CustomerInfo.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking": {"_id": "bk-7", "status": "confirmed", "totalPrice": "199.99"}}`))
	})

	b, err := c.CreateBooking(context.Background(), BookingPayload{
		CustomerInfo: domain.CustomerInfo{Name: "Dana"},
		StartAt:      time.Now(),
	})
	require.NoError(t, err)
	// legacy `_id` and string totalPrice both coerce
	assert.Equal(t, "bk-7", b.ID)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 199.99, b.TotalPrice)
}

func TestErrorMessagePassedVerbatim(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "slot already booked"}`))
	})

	_, err := c.CreateBooking(context.Background(), BookingPayload{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "slot already booked", apiErr.Message)
}

func TestErrorWithoutBodyGetsGenericMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.CreateBooking(context.Background(), BookingPayload{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestLoginSendsCredentialsAndReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-1"})
	})

	token, err := c.Login(context.Background(), "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

func TestListBookingsAcceptsBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id": "a"}, {"_id": "b"}]`))
	})

	bookings, err := c.ListBookings(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "a", bookings[0].ID)
	assert.Equal(t, "b", bookings[1].ID)
}

func TestListBookingsAcceptsWrappedArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bookings": [{"id": "a"}]}`))
	})

	bookings, err := c.ListBookings(context.Background(), "tok-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
}

func TestDeleteBooking(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookings/bk-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteBooking(context.Background(), "tok-1", "bk-1"))
}
