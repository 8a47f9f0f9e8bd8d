package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/precisionto/funnel-go/internal/domain"
)

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	const op = "upstream.Client.Login"

	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "POST", "/api/login", body, "", &resp); err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%s: empty token in response", op)
	}

	return resp.Token, nil
}

// ListBookings fetches every booking the token can see. The backend has
// returned both a bare array and wrapped forms over time; accept all three.
func (c *Client) ListBookings(ctx context.Context, token string) ([]domain.Booking, error) {
	const op = "upstream.Client.ListBookings"

	var raw json.RawMessage
	if err := c.do(ctx, "GET", "/api/bookings", nil, token, &raw); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var wire []wireBooking
	if err := json.Unmarshal(raw, &wire); err != nil {
		var wrapped struct {
			Bookings []wireBooking `json:"bookings"`
			Data     []wireBooking `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		wire = wrapped.Bookings
		if wire == nil {
			wire = wrapped.Data
		}
	}

	out := make([]domain.Booking, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toDomain())
	}

	return out, nil
}

// UpdateBooking patches the given fields and returns the updated booking.
func (c *Client) UpdateBooking(ctx context.Context, token, id string, patch map[string]any) (domain.Booking, error) {
	const op = "upstream.Client.UpdateBooking"

	var resp struct {
		Booking *wireBooking `json:"booking"`
		Data    *wireBooking `json:"data"`
	}
	if err := c.do(ctx, "PATCH", "/api/bookings/"+id, patch, token, &resp); err != nil {
		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	wb := resp.Booking
	if wb == nil {
		wb = resp.Data
	}
	if wb == nil {
		return domain.Booking{}, fmt.Errorf("%s: empty booking in response", op)
	}

	return wb.toDomain(), nil
}

func (c *Client) DeleteBooking(ctx context.Context, token, id string) error {
	const op = "upstream.Client.DeleteBooking"

	if err := c.do(ctx, "DELETE", "/api/bookings/"+id, nil, token, nil); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
