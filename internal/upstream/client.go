// Package upstream is the HTTP client for the booking backend: availability
// queries, booking creation, and the authenticated admin CRUD the dashboard
// proxies.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError carries the backend's status code and its error message verbatim,
// so callers can surface it to the user unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	const op = "upstream.Client.do"

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractMessage(data)
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
	}

	return nil
}

func extractMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// wireBooking tolerates the backend's legacy `_id` field and missing
// timestamps before conversion into the domain shape.
type wireBooking struct {
	ID               string              `json:"id"`
	LegacyID         string              `json:"_id"`
	Status           string              `json:"status"`
	CustomerInfo     domain.CustomerInfo `json:"customerInfo"`
	VehicleInfo      domain.VehicleInfo  `json:"vehicleInfo"`
	SelectedServices []domain.LineItem   `json:"selectedServices"`
	SelectedAddons   []domain.LineItem   `json:"selectedAddons"`
	TotalPrice       json.RawMessage     `json:"totalPrice"`
	StartAt          time.Time           `json:"startAt"`
	EndAt            *time.Time          `json:"endAt"`
	Notes            string              `json:"notes"`
	Address          string              `json:"address"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

func (w wireBooking) toDomain() domain.Booking {
	id := w.ID
	if id == "" {
		id = w.LegacyID
	}
	status := domain.BookingStatus(w.Status)
	if status == "" {
		status = domain.BookingPending
	}

	return domain.Booking{
		ID:               id,
		Status:           status,
		CustomerInfo:     w.CustomerInfo,
		VehicleInfo:      w.VehicleInfo,
		SelectedServices: w.SelectedServices,
		SelectedAddons:   w.SelectedAddons,
		TotalPrice:       domain.CoerceMoney(w.TotalPrice),
		StartAt:          w.StartAt,
		EndAt:            w.EndAt,
		Notes:            w.Notes,
		Address:          w.Address,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}
