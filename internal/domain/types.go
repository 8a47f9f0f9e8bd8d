package domain

import (
	"time"
)

// SchemaVersion tags the persisted draft layout. Bump on incompatible
// changes; a mismatched blob is discarded instead of migrated.
const SchemaVersion = 2

type DraftStatus string

const (
	StatusIdle       DraftStatus = "idle"
	StatusInProgress DraftStatus = "in-progress"
)

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
}

// Draft is the in-progress booking for one funnel session. It is the only
// value the persisted slot ever holds; a confirmed booking is never written
// back to it.
type Draft struct {
	SchemaVersion     int          `json:"schemaVersion"`
	Status            DraftStatus  `json:"status"`
	VehicleType       string       `json:"vehicleType"`
	SelectedServices  []LineItem   `json:"selectedServices"`
	SelectedAddons    []LineItem   `json:"selectedAddons"`
	CustomerInfo      CustomerInfo `json:"customerInfo"`
	VehicleInfo       VehicleInfo  `json:"vehicleInfo"`
	SelectedDate      string       `json:"selectedDate,omitempty"` // local YYYY-MM-DD, timezone-naive
	SelectedTimeLabel string       `json:"selectedTimeLabel,omitempty"`
	StartAt           *time.Time   `json:"startAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// Slot is one bookable interval for a calendar date.
type Slot struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Label  string    `json:"label"`
	Booked bool      `json:"booked"`
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingNoShow    BookingStatus = "no_show"
)

// Booking is the backend's representation of a created booking. After a
// successful checkout it is merged over the local draft snapshot to form the
// receipt; backend-confirmed fields take precedence.
type Booking struct {
	ID               string        `json:"id"`
	Status           BookingStatus `json:"status"`
	CustomerInfo     CustomerInfo  `json:"customerInfo"`
	VehicleInfo      VehicleInfo   `json:"vehicleInfo"`
	SelectedServices []LineItem    `json:"selectedServices"`
	SelectedAddons   []LineItem    `json:"selectedAddons"`
	TotalPrice       float64       `json:"totalPrice"`
	StartAt          time.Time     `json:"startAt"`
	EndAt            *time.Time    `json:"endAt,omitempty"`
	Notes            string        `json:"notes"`
	Address          string        `json:"address"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}
