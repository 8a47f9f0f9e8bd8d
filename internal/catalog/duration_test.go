package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		label string
		ok    bool
		want  DurationEstimate
	}{
		{"2–3 hrs", true, DurationEstimate{Min: 120, Max: 180, Avg: 150}},
		{"1-2 hrs", true, DurationEstimate{Min: 60, Max: 120, Avg: 90}},
		{"30-40 mins", true, DurationEstimate{Min: 30, Max: 40, Avg: 35}},
		{"1h 30m", true, DurationEstimate{Min: 90, Max: 90, Avg: 90}},
		{"45 mins", true, DurationEstimate{Min: 45, Max: 45, Avg: 45}},
		{"2 hrs", true, DurationEstimate{Min: 120, Max: 120, Avg: 120}},
		{"", false, DurationEstimate{}},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := ParseDuration(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "2h 30m", FormatDuration(150))
	assert.Equal(t, "2h", FormatDuration(120))
	assert.Equal(t, "45m", FormatDuration(45))
	assert.Equal(t, "Est. time", FormatDuration(0))
}

func TestDisplayDuration(t *testing.T) {
	assert.Equal(t, "2h – 3h", DisplayDuration("2–3 hrs"))
	assert.Equal(t, "1h 30m", DisplayDuration("1h 30m"))
	assert.Equal(t, "Est. time", DisplayDuration(""))
}
