package httpgin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/service"
	"github.com/precisionto/funnel-go/internal/service/admin"
	"github.com/precisionto/funnel-go/internal/service/availability"
	"github.com/precisionto/funnel-go/internal/service/checkout"
	"github.com/precisionto/funnel-go/internal/service/funnel"
	"github.com/precisionto/funnel-go/internal/upstream"
)

type memSlot struct {
	mu     sync.Mutex
	drafts map[string]domain.Draft
}

func (s *memSlot) Load(ctx context.Context, id string) (domain.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	return d, ok, nil
}

func (s *memSlot) Save(ctx context.Context, id string, d domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[id] = d
	return nil
}

func (s *memSlot) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

type noopBus struct{}

func (noopBus) Publish(ctx context.Context, ev redisrepo.DraftEvent) error { return nil }
func (noopBus) Subscribe(ctx context.Context, h func(ctx context.Context, ev redisrepo.DraftEvent)) error {
	<-ctx.Done()
	return ctx.Err()
}

type stubFetcher struct{ slots []domain.Slot }

func (f stubFetcher) FetchSlots(ctx context.Context, date string) ([]domain.Slot, error) {
	return f.slots, nil
}

type stubCreator struct{}

func (stubCreator) CreateBooking(ctx context.Context, p upstream.BookingPayload) (domain.Booking, error) {
	return domain.Booking{ID: "bk-1", Status: domain.BookingConfirmed, TotalPrice: p.TotalPrice}, nil
}

type stubBackend struct{}

func (stubBackend) Login(ctx context.Context, email, password string) (string, error) {
	if password != "hunter2" {
		return "", &upstream.APIError{Status: 401, Message: "invalid credentials"}
	}
	return "upstream-token", nil
}

func (stubBackend) ListBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	return []domain.Booking{{ID: "bk-1", Status: domain.BookingConfirmed}}, nil
}

func (stubBackend) UpdateBooking(ctx context.Context, token, id string, patch map[string]any) (domain.Booking, error) {
	return domain.Booking{ID: id}, nil
}

func (stubBackend) DeleteBooking(ctx context.Context, token, id string) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.Default()
	fun := funnel.New(&memSlot{drafts: make(map[string]domain.Draft)}, noopBus{}, logger)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	fetcher := stubFetcher{slots: []domain.Slot{{
		Start:  start,
		End:    start.Add(time.Hour),
		Label:  upstream.SlotLabel(start),
		Booked: false,
	}}}

	svcs := &service.Services{
		Funnel:       fun,
		Availability: availability.New(fetcher, nil, logger, availability.Config{}),
		Checkout:     checkout.New(stubCreator{}, fun, nil, logger),
		Admin:        admin.New(stubBackend{}, logger, "test-secret"),
	}

	return NewRouter(svcs, nil, nil, logger)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogETag(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalog/vehicle-types", "")
	require.Equal(t, http.StatusOK, w.Code)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	w = doJSON(t, r, http.MethodGet, "/catalog/vehicle-types", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
}

func TestCatalogUnknownVehicleType(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/catalog/motorcycle/services", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFunnelHappyPath(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.SessionID
	base := "/sessions/" + id

	// advancing an empty draft is blocked
	w = doJSON(t, r, http.MethodPost, base+"/advance", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/vehicle-type", `{"vehicleType": "sedan"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/services/sedan-detail-full/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st funnel.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Len(t, st.Draft.SelectedServices, 1)
	assert.Positive(t, st.TotalPrice)

	// load availability for a date, then pick the slot
	w = doJSON(t, r, http.MethodPost, base+"/availability", `{"date": "2026-09-10"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool {
		w := doJSON(t, r, http.MethodGet, base+"/availability", "")
		var av availability.State
		_ = json.Unmarshal(w.Body.Bytes(), &av)
		return !av.Loading && len(av.Slots) == 1
	}, time.Second, 10*time.Millisecond)

	w = doJSON(t, r, http.MethodGet, base+"/availability", "")
	var av availability.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &av))
	label := av.Slots[0].Label

	w = doJSON(t, r, http.MethodPut, base+"/schedule",
		`{"date": "2026-09-10", "timeLabel": "`+label+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/customer",
		`{"name": "Dana", "email": "dana@example.com", "phone": "555-0100", "address": "1 Main St"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/vehicle",
		`{"make": "Honda", "model": "Civic", "year": "2020"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusCreated, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.NotNil(t, st.LastConfirmed)
	assert.Equal(t, "bk-1", st.LastConfirmed.ID)
	assert.Empty(t, st.Draft.SelectedServices, "draft cleared after confirmation")

	w = doJSON(t, r, http.MethodGet, base+"/receipt", "")
	require.Equal(t, http.StatusOK, w.Code)
	var receipt domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "bk-1", receipt.ID)
}

func TestCheckoutIncompleteDraft(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", "")
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/sessions/"+created.SessionID+"/checkout", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleRejectsBookedSlot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.Default()
	fun := funnel.New(&memSlot{drafts: make(map[string]domain.Draft)}, noopBus{}, logger)

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	fetcher := stubFetcher{slots: []domain.Slot{{
		Start: start, End: start.Add(time.Hour), Label: upstream.SlotLabel(start), Booked: true,
	}}}

	svcs := &service.Services{
		Funnel:       fun,
		Availability: availability.New(fetcher, nil, logger, availability.Config{}),
		Checkout:     checkout.New(stubCreator{}, fun, nil, logger),
		Admin:        admin.New(stubBackend{}, logger, "test-secret"),
	}
	r := NewRouter(svcs, nil, nil, logger)

	w := doJSON(t, r, http.MethodPost, "/sessions", "")
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	base := "/sessions/" + created.SessionID

	doJSON(t, r, http.MethodPost, base+"/availability", `{"date": "2026-09-10"}`)
	require.Eventually(t, func() bool {
		w := doJSON(t, r, http.MethodGet, base+"/availability", "")
		var av availability.State
		_ = json.Unmarshal(w.Body.Bytes(), &av)
		return !av.Loading
	}, time.Second, 10*time.Millisecond)

	w = doJSON(t, r, http.MethodGet, base+"/availability", "")
	var av availability.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &av))

	w = doJSON(t, r, http.MethodPut, base+"/schedule",
		`{"date": "2026-09-10", "timeLabel": "`+av.Slots[0].Label+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminAuth(t *testing.T) {
	r := newTestRouter(t)

	// no token
	w := doJSON(t, r, http.MethodGet, "/admin/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// bad credentials
	w = doJSON(t, r, http.MethodPost, "/admin/login",
		`{"email": "admin@example.com", "password": "wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// good credentials, then an authorized list
	w = doJSON(t, r, http.MethodPost, "/admin/login",
		`{"email": "admin@example.com", "password": "hunter2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(t, r, http.MethodGet, "/admin/bookings", "", "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var page admin.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Total)
}

func TestReceiptBeforeConfirmationIs404(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", "")
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, "/sessions/"+created.SessionID+"/receipt", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no confirmed booking for this session", resp.Error)
}

func TestResetSession(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", "")
	var created CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	base := "/sessions/" + created.SessionID

	doJSON(t, r, http.MethodPut, base+"/vehicle-type", `{"vehicleType": "suv"}`)
	doJSON(t, r, http.MethodPost, base+"/services/suv-detail-full/toggle", "")

	w = doJSON(t, r, http.MethodDelete, base, "")
	require.Equal(t, http.StatusOK, w.Code)

	var st funnel.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Empty(t, st.Draft.SelectedServices)
	assert.Empty(t, st.Draft.VehicleType)
}
