// Package wizard sequences the booking funnel. It owns no booking data;
// every gate is a query against the current draft snapshot, so going back
// and forward reproduces the same selections.
package wizard

import (
	"errors"
	"fmt"

	"github.com/precisionto/funnel-go/internal/domain"
)

type Step string

const (
	StepChooseCategory Step = "choose-category"
	StepPickServices   Step = "pick-services"
	StepAddons         Step = "addons"
	StepSummary        Step = "summary"
	StepBooking        Step = "booking"
	StepConfirmation   Step = "confirmation"
)

var ErrStepIncomplete = errors.New("step requirements not met")

var order = []Step{
	StepChooseCategory,
	StepPickServices,
	StepAddons,
	StepSummary,
	StepBooking,
	StepConfirmation,
}

// First returns the funnel's entry step.
func First() Step {
	return StepChooseCategory
}

func indexOf(s Step) int {
	for i, st := range order {
		if st == s {
			return i
		}
	}
	return -1
}

// Next returns the step after current, provided the draft satisfies the
// gate for entering it. Transitions are explicit; nothing advances on its
// own.
func Next(current Step, d domain.Draft) (Step, error) {
	const op = "wizard.Next"

	i := indexOf(current)
	if i < 0 || i == len(order)-1 {
		return current, fmt.Errorf("%s: no step after %q", op, current)
	}

	next := order[i+1]
	if !CanEnter(next, d) {
		return current, fmt.Errorf("%s:%w", op, ErrStepIncomplete)
	}

	return next, nil
}

// Back returns the previous step. Backward navigation is always allowed and
// never touches the draft.
func Back(current Step) Step {
	i := indexOf(current)
	if i <= 0 {
		return order[0]
	}
	return order[i-1]
}

// CanEnter reports whether the draft satisfies the minimum completeness for
// a step.
func CanEnter(s Step, d domain.Draft) bool {
	switch s {
	case StepChooseCategory:
		return true
	case StepPickServices:
		return d.VehicleType != ""
	case StepAddons, StepSummary, StepBooking:
		return d.VehicleType != "" && len(d.SelectedServices) > 0
	case StepConfirmation:
		return ReadyToSubmit(d)
	default:
		return false
	}
}

// ReadyToSubmit gates the checkout action: a concrete start instant plus the
// required customer and vehicle fields. The submitter itself does not
// re-validate this.
func ReadyToSubmit(d domain.Draft) bool {
	if len(d.SelectedServices) == 0 || d.StartAt == nil || d.SelectedTimeLabel == "" {
		return false
	}
	ci := d.CustomerInfo
	vi := d.VehicleInfo
	return ci.Name != "" && ci.Email != "" && ci.Phone != "" && ci.Address != "" &&
		vi.Make != "" && vi.Model != "" && vi.Year != ""
}
