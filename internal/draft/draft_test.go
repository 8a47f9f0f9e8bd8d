package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
)

func item(id string, price float64) domain.LineItem {
	return domain.LineItem{ID: id, Title: id, Price: price, Quantity: 1}
}

func TestToggleServiceAddsAndRemoves(t *testing.T) {
	d := New(time.Now())

	d = ToggleService(d, item("sedan-detail-full", 150))
	require.Len(t, d.SelectedServices, 1)
	assert.Equal(t, 1, d.SelectedServices[0].Quantity)
	assert.Equal(t, domain.StatusInProgress, d.Status)

	d = ToggleService(d, item("sedan-detail-full", 150))
	assert.Empty(t, d.SelectedServices)
}

func TestToggleFallsBackToTitle(t *testing.T) {
	d := New(time.Now())

	d = ToggleAddon(d, domain.LineItem{Title: "Headlight Restoration", Price: 45})
	require.Len(t, d.SelectedAddons, 1)
	assert.Equal(t, "Headlight Restoration", d.SelectedAddons[0].ID)

	// same title toggles the entry off even without an id
	d = ToggleAddon(d, domain.LineItem{Title: "Headlight Restoration", Price: 45})
	assert.Empty(t, d.SelectedAddons)
}

func TestAdjustServiceQuantity(t *testing.T) {
	d := New(time.Now())
	d = ToggleService(d, item("svc", 10))

	d = AdjustService(d, "svc", +1)
	require.Len(t, d.SelectedServices, 1)
	assert.Equal(t, 2, d.SelectedServices[0].Quantity)

	d = AdjustService(d, "svc", -1)
	assert.Equal(t, 1, d.SelectedServices[0].Quantity)

	// reaching zero removes the line item entirely
	d = AdjustService(d, "svc", -1)
	assert.Empty(t, d.SelectedServices)

	// decrementing an absent id is a no-op
	d = AdjustService(d, "svc", -1)
	assert.Empty(t, d.SelectedServices)

	// incrementing an absent id adds it with quantity 1
	d = AdjustService(d, "svc", +1)
	require.Len(t, d.SelectedServices, 1)
	assert.Equal(t, 1, d.SelectedServices[0].Quantity)
}

func TestTransitionsLeavePriorDraftIntact(t *testing.T) {
	d := New(time.Now())
	d = ToggleService(d, item("a", 10))
	d = ToggleService(d, item("b", 20))

	before := d

	next := AdjustService(d, "a", +1)
	require.Equal(t, 2, next.SelectedServices[0].Quantity)
	// the draft captured before the adjust must still read quantity 1
	assert.Equal(t, 1, before.SelectedServices[0].Quantity)

	next = ToggleService(d, item("a", 10))
	require.Len(t, next.SelectedServices, 1)
	assert.Len(t, before.SelectedServices, 2)

	next = ToggleService(d, item("c", 30))
	require.Len(t, next.SelectedServices, 3)
	assert.Len(t, before.SelectedServices, 2)
	assert.Equal(t, "a", before.SelectedServices[0].ID)
	assert.Equal(t, "b", before.SelectedServices[1].ID)
}

func TestNormalizeRepairs(t *testing.T) {
	d := domain.Draft{
		SelectedServices: []domain.LineItem{
			{Title: "No ID", Price: -5, Quantity: 0},
		},
	}

	Normalize(&d)

	require.Len(t, d.SelectedServices, 1)
	it := d.SelectedServices[0]
	assert.Equal(t, "No ID", it.ID)
	assert.Equal(t, 1, it.Quantity)
	assert.Zero(t, it.Price)
	assert.NotNil(t, d.SelectedAddons)
	assert.Equal(t, domain.StatusIdle, d.Status)
}

func TestTotalPrice(t *testing.T) {
	d := New(time.Now())
	d = ToggleService(d, item("wash", 10.00))
	d = AdjustService(d, "wash", +1) // 2 x 10.00
	d = ToggleService(d, item("wax", 5.00))
	d = ToggleAddon(d, domain.LineItem{ID: "scent", Title: "scent", Price: 3.00})

	assert.Equal(t, 25.00, TotalPrice(d))

	d = AdjustService(d, "wash", +1) // 3 x 10.00
	assert.Equal(t, 35.00, TotalPrice(d))
}

func TestTotalPriceRoundsToCents(t *testing.T) {
	// 3 x 0.1 accumulates binary error without the rounding step
	d := New(time.Now())
	d = ToggleService(d, item("odd", 0.1))
	d = AdjustService(d, "odd", +2)

	assert.Equal(t, 0.3, TotalPrice(d))
}

func TestTotalDuration(t *testing.T) {
	d := New(time.Now())
	d = ToggleService(d, domain.LineItem{ID: "a", Title: "a", DurationMinutes: 90})
	d = AdjustService(d, "a", +1)
	d = ToggleAddon(d, domain.LineItem{ID: "b", Title: "b", DurationMinutes: 30})

	assert.Equal(t, 210, TotalDuration(d))
}

func TestSeededKeepsOnlyVehicleType(t *testing.T) {
	d := Seeded("suv", time.Now())

	assert.Equal(t, "suv", d.VehicleType)
	assert.Empty(t, d.SelectedServices)
	assert.Equal(t, domain.StatusIdle, d.Status)
	assert.Equal(t, domain.SchemaVersion, d.SchemaVersion)
}
