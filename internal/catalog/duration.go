package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DurationEstimate is a parsed duration label in minutes.
type DurationEstimate struct {
	Min int `json:"min"`
	Max int `json:"max"`
	Avg int `json:"avg"`
}

var (
	rangeRe = regexp.MustCompile(`(\d+)[–-](\d+)`)
	hoursRe = regexp.MustCompile(`(\d+)\s*h`)
	minsRe  = regexp.MustCompile(`(\d+)\s*m`)
)

// ParseDuration parses human duration labels like "2–3 hrs", "30-40 mins",
// "1h 30m" or "45 mins" into minutes. Returns false for empty input.
func ParseDuration(s string) (DurationEstimate, bool) {
	if s == "" {
		return DurationEstimate{}, false
	}
	lower := strings.ToLower(s)

	if m := rangeRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if strings.Contains(lower, "min") {
			return DurationEstimate{Min: lo, Max: hi, Avg: (lo + hi + 1) / 2}, true
		}
		// hours range
		return DurationEstimate{
			Min: lo * 60,
			Max: hi * 60,
			Avg: (lo + hi) * 30,
		}, true
	}

	var mins int
	if m := hoursRe.FindStringSubmatch(lower); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins += h * 60
	}
	if m := minsRe.FindStringSubmatch(lower); m != nil {
		v, _ := strconv.Atoi(m[1])
		mins += v
	}

	return DurationEstimate{Min: mins, Max: mins, Avg: mins}, true
}

// FormatDuration renders minutes as "2h 30m", "2h" or "45m".
func FormatDuration(mins int) string {
	if mins <= 0 {
		return "Est. time"
	}
	h := mins / 60
	m := mins % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// DisplayDuration renders a duration label like "2–3 hrs" as "2h – 3h".
func DisplayDuration(label string) string {
	est, ok := ParseDuration(label)
	if !ok {
		return "Est. time"
	}
	if est.Min != est.Max {
		return FormatDuration(est.Min) + " – " + FormatDuration(est.Max)
	}
	return FormatDuration(est.Min)
}
