package upstream

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

// FetchSlots asks the backend for bookable slots on a local calendar date
// (YYYY-MM-DD) and maps them into labeled slots. An empty list is a valid
// outcome, distinct from a fetch failure.
func (c *Client) FetchSlots(ctx context.Context, date string) ([]domain.Slot, error) {
	const op = "upstream.Client.FetchSlots"

	var resp struct {
		AvailableSlots []struct {
			Start  time.Time `json:"start"`
			End    time.Time `json:"end"`
			Booked bool      `json:"booked"`
		} `json:"availableSlots"`
	}

	path := "/api/bookings/availability?date=" + url.QueryEscape(date)
	if err := c.do(ctx, "GET", path, nil, "", &resp); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	slots := make([]domain.Slot, 0, len(resp.AvailableSlots))
	for _, s := range resp.AvailableSlots {
		slots = append(slots, domain.Slot{
			Start:  s.Start,
			End:    s.End,
			Label:  SlotLabel(s.Start),
			Booked: s.Booked,
		})
	}

	return slots, nil
}

// SlotLabel renders the clock-time label shown for a slot, e.g. "2:00 PM".
func SlotLabel(start time.Time) string {
	return start.In(time.Local).Format("3:04 PM")
}
