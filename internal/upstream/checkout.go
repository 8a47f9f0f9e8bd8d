package upstream

import (
	"context"
	"fmt"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

// DefaultSlotMinutes pads services that carry no duration estimate; the
// backend schedules them as one standard slot.
const DefaultSlotMinutes = 60

// PayloadItem is the wire shape of a selected service or add-on.
type PayloadItem struct {
	ID              string  `json:"id,omitempty"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingPayload is the backend's expected creation request.
type BookingPayload struct {
	CustomerInfo     domain.CustomerInfo `json:"customerInfo"`
	VehicleInfo      domain.VehicleInfo  `json:"vehicleInfo"`
	SelectedServices []PayloadItem       `json:"selectedServices"`
	SelectedAddons   []PayloadItem       `json:"selectedAddons"`
	TotalPrice       float64             `json:"totalPrice"`
	StartAt          time.Time           `json:"startAt"`
	Notes            string              `json:"notes"`
	Address          string              `json:"address"`
}

// BuildPayload shapes a draft for submission. It coerces structure only;
// completeness gating is the wizard's job, not the submitter's.
func BuildPayload(d domain.Draft, totalPrice float64) BookingPayload {
	p := BookingPayload{
		CustomerInfo:     d.CustomerInfo,
		VehicleInfo:      d.VehicleInfo,
		SelectedServices: payloadItems(d.SelectedServices),
		SelectedAddons:   payloadItems(d.SelectedAddons),
		TotalPrice:       totalPrice,
		Notes:            d.CustomerInfo.Notes,
		Address:          d.CustomerInfo.Address,
	}
	if d.StartAt != nil {
		p.StartAt = *d.StartAt
	}
	return p
}

func payloadItems(items []domain.LineItem) []PayloadItem {
	out := make([]PayloadItem, 0, len(items))
	for _, it := range items {
		mins := it.DurationMinutes
		if mins <= 0 {
			mins = DefaultSlotMinutes
		}
		out = append(out, PayloadItem{
			ID:              it.ID,
			Title:           it.Title,
			Price:           it.Price,
			DurationMinutes: mins,
		})
	}
	return out
}

// CreateBooking posts the payload and returns the backend's booking
// representation. The caller owns timeout and cancellation via ctx.
func (c *Client) CreateBooking(ctx context.Context, p BookingPayload) (domain.Booking, error) {
	const op = "upstream.Client.CreateBooking"

	var resp struct {
		Booking *wireBooking `json:"booking"`
		Data    *wireBooking `json:"data"`
	}
	if err := c.do(ctx, "POST", "/api/bookings", p, "", &resp); err != nil {
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
