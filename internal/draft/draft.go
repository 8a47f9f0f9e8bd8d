// Package draft holds the pure state transitions for an in-progress booking.
// Every function takes the previous draft by value and returns the next one;
// nothing here performs I/O. The funnel service serializes access and decides
// when a transition gets persisted.
package draft

import (
	"math"
	"time"

	"github.com/precisionto/funnel-go/internal/domain"
)

// New returns a fresh idle draft stamped with now.
func New(now time.Time) domain.Draft {
	return domain.Draft{
		SchemaVersion:    domain.SchemaVersion,
		Status:           domain.StatusIdle,
		SelectedServices: []domain.LineItem{},
		SelectedAddons:   []domain.LineItem{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Seeded returns a fresh draft that keeps only the vehicle type of a
// discarded one. Used when a persisted blob fails the schema-version check.
func Seeded(vehicleType string, now time.Time) domain.Draft {
	d := New(now)
	d.VehicleType = vehicleType
	return d
}

// Normalize repairs a draft in place so downstream consumers only ever see
// canonical line items: id falls back to title, quantity floors at 1, prices
// are finite and non-negative, nil lists become empty ones.
func Normalize(d *domain.Draft) {
	d.SchemaVersion = domain.SchemaVersion
	if d.Status != domain.StatusInProgress {
		d.Status = domain.StatusIdle
	}
	d.SelectedServices = normalizeItems(d.SelectedServices)
	d.SelectedAddons = normalizeItems(d.SelectedAddons)
}

func normalizeItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" {
			it.ID = it.Title
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
			it.Price = 0
		}
		out = append(out, it)
	}
	return out
}

func touch(d *domain.Draft, now time.Time) {
	d.Status = domain.StatusInProgress
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

// ToggleService removes the service when an item with the same id is already
// selected, otherwise appends it with quantity 1. Toggling twice with the
// same id restores the original list.
func ToggleService(d domain.Draft, item domain.LineItem) domain.Draft {
	d.SelectedServices = toggle(d.SelectedServices, item)
	touch(&d, time.Now())
	Normalize(&d)
	return d
}

func ToggleAddon(d domain.Draft, item domain.LineItem) domain.Draft {
	d.SelectedAddons = toggle(d.SelectedAddons, item)
	touch(&d, time.Now())
	Normalize(&d)
	return d
}

// AdjustService changes the quantity of the identified service by delta.
// Reaching 0 removes the item; incrementing an absent id adds it with
// quantity 1; decrementing an absent id is a no-op.
func AdjustService(d domain.Draft, id string, delta int) domain.Draft {
	d.SelectedServices = adjust(d.SelectedServices, id, delta)
	touch(&d, time.Now())
	Normalize(&d)
	return d
}

func AdjustAddon(d domain.Draft, id string, delta int) domain.Draft {
	d.SelectedAddons = adjust(d.SelectedAddons, id, delta)
	touch(&d, time.Now())
	Normalize(&d)
	return d
}

func SetVehicleType(d domain.Draft, vehicleType string) domain.Draft {
	d.VehicleType = vehicleType
	touch(&d, time.Now())
	return d
}

func SetCustomerInfo(d domain.Draft, info domain.CustomerInfo) domain.Draft {
	d.CustomerInfo = info
	touch(&d, time.Now())
	return d
}

func SetVehicleInfo(d domain.Draft, info domain.VehicleInfo) domain.Draft {
	d.VehicleInfo = info
	touch(&d, time.Now())
	return d
}

// SetSchedule records the chosen calendar date, the human-readable slot
// label, and the concrete instant the backend will receive.
func SetSchedule(d domain.Draft, date, timeLabel string, startAt time.Time) domain.Draft {
	d.SelectedDate = date
	d.SelectedTimeLabel = timeLabel
	d.StartAt = &startAt
	touch(&d, time.Now())
	return d
}

// toggle and adjust always return a freshly built list and never write into
// the backing array, so drafts handed out earlier stay untouched.
func toggle(list []domain.LineItem, item domain.LineItem) []domain.LineItem {
	key := item.Key()
	for i, it := range list {
		if it.Key() == key {
			return removeAt(list, i)
		}
	}
	item.ID = key
	item.Quantity = 1
	out := make([]domain.LineItem, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

func adjust(list []domain.LineItem, id string, delta int) []domain.LineItem {
	for i, it := range list {
		if it.Key() != id {
			continue
		}
		qty := it.Quantity + delta
		if qty <= 0 {
			return removeAt(list, i)
		}
		out := append([]domain.LineItem(nil), list...)
		out[i].Quantity = qty
		return out
	}
	if delta > 0 {
		out := make([]domain.LineItem, 0, len(list)+1)
		out = append(out, list...)
		return append(out, domain.LineItem{ID: id, Quantity: 1})
	}
	return list
}

func removeAt(list []domain.LineItem, i int) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// TotalPrice is the derived total over services and add-ons, rounded to two
// decimals.
func TotalPrice(d domain.Draft) float64 {
	var sum float64
	for _, s := range d.SelectedServices {
		sum += s.Price * float64(max(1, s.Quantity))
	}
	for _, a := range d.SelectedAddons {
		sum += a.Price * float64(max(1, a.Quantity))
	}
	return math.Round(sum*100) / 100
}

// TotalDuration sums the estimated minutes across selected line items.
func TotalDuration(d domain.Draft) int {
	var mins int
	for _, s := range d.SelectedServices {
		mins += s.DurationMinutes * max(1, s.Quantity)
	}
	for _, a := range d.SelectedAddons {
		mins += a.DurationMinutes * max(1, a.Quantity)
	}
	return mins
}
