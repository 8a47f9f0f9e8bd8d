// Package admin proxies the operator dashboard to the booking backend and
// applies the list shaping (dedupe, search, filter, sort, pagination) the
// backend does not do itself.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/precisionto/funnel-go/internal/domain"
	"github.com/precisionto/funnel-go/internal/upstream"
)

const (
	tokenTTL        = 12 * time.Hour
	defaultPageSize = 20
	maxPageSize     = 100
)

// Backend is the upstream surface the dashboard needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListBookings(ctx context.Context, token string) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, token, id string, patch map[string]any) (domain.Booking, error)
	DeleteBooking(ctx context.Context, token, id string) error
}

// ListQuery shapes the bookings list.
type ListQuery struct {
	Search   string
	Status   domain.BookingStatus
	SortKey  string // "createdAt" | "startAt" | "totalPrice" | "name"
	SortDesc bool
	Page     int
	PageSize int
}

// Page is one shaped slice of the bookings list.
type Page struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

type gatewayClaims struct {
	UpstreamToken string `json:"upstreamToken"`
	jwt.RegisteredClaims
}

type Service struct {
	backend   Backend
	logger    *slog.Logger
	jwtSecret []byte
}

func New(backend Backend, logger *slog.Logger, jwtSecret string) *Service {
	return &Service{
		backend:   backend,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login authenticates against the backend and wraps its token in a gateway
// JWT; admin endpoints unwrap it per request so the upstream token never
// reaches the browser directly.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "admin.Service.Login"

	upToken, err := s.backend.Login(ctx, email, password)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s:%w", op, err)
	}

	now := time.Now()
	claims := gatewayClaims{
		UpstreamToken: upToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("admin login", "email", email)

	return signed, nil
}

// VerifyToken validates a gateway JWT and returns the upstream token inside.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	const op = "admin.Service.VerifyToken"

	var claims gatewayClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, jwt.ErrTokenUnverifiable)
	}

	return claims.UpstreamToken, nil
}

// ListBookings fetches everything and shapes it server-side. The backend
// occasionally duplicates rows across pages, so dedupe by id first.
func (s *Service) ListBookings(ctx context.Context, upToken string, q ListQuery) (Page, error) {
	const op = "admin.Service.ListBookings"

	all, err := s.backend.ListBookings(ctx, upToken)
	if err != nil {
		return Page{}, fmt.Errorf("%s:%w", op, err)
	}

	bookings := dedupe(all)
	bookings = filterBookings(bookings, q)
	sortBookings(bookings, q)

	total := len(bookings)
	page, size := normalizePage(q)

	lo := (page - 1) * size
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}

	return Page{
		Bookings: bookings[lo:hi],
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// UpdateStatus moves a booking through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, upToken, id string, status domain.BookingStatus) (domain.Booking, error) {
	const op = "admin.Service.UpdateStatus"

	switch status {
	case domain.BookingPending, domain.BookingConfirmed, domain.BookingCompleted,
		domain.BookingCancelled, domain.BookingNoShow:
	default:
		return domain.Booking{}, ErrInvalidStatus
	}

	b, err := s.backend.UpdateBooking(ctx, upToken, id, map[string]any{"status": status})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("booking status updated", "booking_id", id, "status", status)

	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, upToken, id string) error {
	const op = "admin.Service.DeleteBooking"

	if err := s.backend.DeleteBooking(ctx, upToken, id); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.logger.Info("booking deleted", "booking_id", id)

	return nil
}

func dedupe(in []domain.Booking) []domain.Booking {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Booking, 0, len(in))
	for _, b := range in {
		if b.ID != "" {
			if _, ok := seen[b.ID]; ok {
				continue
			}
			seen[b.ID] = struct{}{}
		}
		out = append(out, b)
	}
	return out
}

func filterBookings(in []domain.Booking, q ListQuery) []domain.Booking {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	if needle == "" && q.Status == "" {
		return in
	}

	out := in[:0]
	for _, b := range in {
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if needle != "" && !matches(b, needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matches(b domain.Booking, needle string) bool {
	for _, field := range []string{
		b.CustomerInfo.Name,
		b.CustomerInfo.Email,
		b.CustomerInfo.Phone,
		b.VehicleInfo.Make,
		b.VehicleInfo.Model,
		b.ID,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortBookings(bookings []domain.Booking, q ListQuery) {
	var less func(a, b domain.Booking) bool

	switch q.SortKey {
	case "startAt":
		less = func(a, b domain.Booking) bool { return a.StartAt.Before(b.StartAt) }
	case "totalPrice":
		less = func(a, b domain.Booking) bool { return a.TotalPrice < b.TotalPrice }
	case "name":
		less = func(a, b domain.Booking) bool {
			return strings.ToLower(a.CustomerInfo.Name) < strings.ToLower(b.CustomerInfo.Name)
		}
	default: // createdAt
		less = func(a, b domain.Booking) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if q.SortDesc {
			return less(bookings[j], bookings[i])
		}
		return less(bookings[i], bookings[j])
	})
}

func normalizePage(q ListQuery) (page, size int) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	size = q.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
