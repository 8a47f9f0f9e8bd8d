package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
)

func completeDraft() domain.Draft {
	start := time.Now().Add(48 * time.Hour)
	return domain.Draft{
		VehicleType:       "sedan",
		SelectedServices:  []domain.LineItem{{ID: "svc", Title: "svc", Quantity: 1}},
		SelectedTimeLabel: "9:00 AM",
		StartAt:           &start,
		CustomerInfo: domain.CustomerInfo{
			Name: "Dana", Email: "dana@example.com", Phone: "555-0100", Address: "1 Main St",
		},
		VehicleInfo: domain.VehicleInfo{Make: "Honda", Model: "Civic", Year: "2020"},
	}
}

func TestNextGatesOnDraftCompleteness(t *testing.T) {
	var d domain.Draft

	// empty draft cannot leave choose-category
	_, err := Next(StepChooseCategory, d)
	assert.ErrorIs(t, err, ErrStepIncomplete)

	d.VehicleType = "sedan"
	step, err := Next(StepChooseCategory, d)
	require.NoError(t, err)
	assert.Equal(t, StepPickServices, step)

	// no services selected yet
	_, err = Next(step, d)
	assert.ErrorIs(t, err, ErrStepIncomplete)

	d.SelectedServices = []domain.LineItem{{ID: "svc", Quantity: 1}}
	for _, want := range []Step{StepAddons, StepSummary, StepBooking} {
		step, err = Next(step, d)
		require.NoError(t, err)
		assert.Equal(t, want, step)
	}

	// booking details incomplete
	_, err = Next(StepBooking, d)
	assert.ErrorIs(t, err, ErrStepIncomplete)
}

func TestNextReachesConfirmation(t *testing.T) {
	step, err := Next(StepBooking, completeDraft())
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, step)

	// nothing after confirmation
	_, err = Next(StepConfirmation, completeDraft())
	assert.Error(t, err)
}

func TestBackAlwaysAllowed(t *testing.T) {
	assert.Equal(t, StepBooking, Back(StepConfirmation))
	assert.Equal(t, StepChooseCategory, Back(StepPickServices))
	// already at the start
	assert.Equal(t, StepChooseCategory, Back(StepChooseCategory))
}

func TestReadyToSubmit(t *testing.T) {
	d := completeDraft()
	assert.True(t, ReadyToSubmit(d))

	missing := completeDraft()
	missing.StartAt = nil
	assert.False(t, ReadyToSubmit(missing))

	missing = completeDraft()
	missing.CustomerInfo.Email = ""
	assert.False(t, ReadyToSubmit(missing))

	missing = completeDraft()
	missing.VehicleInfo.Year = ""
	assert.False(t, ReadyToSubmit(missing))

	missing = completeDraft()
	missing.SelectedServices = nil
	assert.False(t, ReadyToSubmit(missing))
}
