// Package catalog carries the per-vehicle-type service and add-on catalogs
// the funnel sells. Entries are static; the draft stores copies of whatever
// was selected, so a catalog edit never rewrites an existing draft.
package catalog

import (
	"errors"

	"github.com/precisionto/funnel-go/internal/domain"
)

var ErrUnknownVehicleType = errors.New("unknown vehicle type")

// Entry is one bookable service or add-on.
type Entry struct {
	ID          string   `json:"id"`
	Category    string   `json:"category,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// LineItem converts a catalog entry into the draft's normalized line-item
// shape with quantity 1.
func (e Entry) LineItem() domain.LineItem {
	mins := 0
	if est, ok := ParseDuration(e.Duration); ok {
		mins = est.Avg
	}
	return domain.LineItem{
		ID:              e.ID,
		Title:           e.Title,
		Price:           e.Price,
		Quantity:        1,
		DurationMinutes: mins,
	}
}

// VehicleTypes lists the catalogs we carry, in display order.
func VehicleTypes() []string {
	return []string{"sedan", "suv", "truck", "coupe"}
}

// Services returns the service catalog for a vehicle type.
func Services(vehicleType string) ([]Entry, error) {
	entries, ok := servicesData[vehicleType]
	if !ok {
		return nil, ErrUnknownVehicleType
	}
	return entries, nil
}

// Addons returns the add-on catalog for a vehicle type.
func Addons(vehicleType string) ([]Entry, error) {
	entries, ok := addonsData[vehicleType]
	if !ok {
		return nil, ErrUnknownVehicleType
	}
	return entries, nil
}

var ErrEntryNotFound = errors.New("catalog entry not found")

// FindService looks a service up by id within a vehicle type's catalog.
func FindService(vehicleType, id string) (Entry, error) {
	entries, err := Services(vehicleType)
	if err != nil {
		return Entry{}, err
	}
	return find(entries, id)
}

// FindAddon looks an add-on up by id within a vehicle type's catalog.
func FindAddon(vehicleType, id string) (Entry, error) {
	entries, err := Addons(vehicleType)
	if err != nil {
		return Entry{}, err
	}
	return find(entries, id)
}

func find(entries []Entry, id string) (Entry, error) {
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}
