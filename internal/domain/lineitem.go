package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LineItem is a selected service or add-on. ID falls back to Title when the
// source never carried one; two catalog entries sharing a title and lacking
// ids therefore collide. Legacy persisted drafts used `_id` and `qty`.
type LineItem struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
}

// Key returns the identity used for toggle/increment lookups.
func (li LineItem) Key() string {
	if li.ID != "" {
		return li.ID
	}
	return li.Title
}

// UnmarshalJSON accepts both the current layout and legacy drafts: `_id`
// instead of `id`, `qty` instead of `quantity`, and prices that arrive as
// strings or garbage. Malformed values coerce instead of failing.
func (li *LineItem) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID              string          `json:"id"`
		LegacyID        string          `json:"_id"`
		Title           string          `json:"title"`
		Price           json.RawMessage `json:"price"`
		Quantity        json.RawMessage `json:"quantity"`
		LegacyQty       json.RawMessage `json:"qty"`
		DurationMinutes int             `json:"durationMinutes"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	li.ID = aux.ID
	if li.ID == "" {
		li.ID = aux.LegacyID
	}
	if li.ID == "" {
		li.ID = aux.Title
	}
	li.Title = aux.Title
	li.Price = CoerceMoney(aux.Price)
	li.DurationMinutes = aux.DurationMinutes

	qty := coerceInt(aux.Quantity)
	if qty == 0 {
		qty = coerceInt(aux.LegacyQty)
	}
	if qty < 1 {
		qty = 1
	}
	li.Quantity = qty

	return nil
}

// CoerceMoney turns arbitrary JSON into a finite non-negative amount.
// Non-numeric input coerces to 0 rather than failing.
func CoerceMoney(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}

	return f
}

func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v
		}
	}

	return 0
}
