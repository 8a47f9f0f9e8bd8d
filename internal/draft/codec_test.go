package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionto/funnel-go/internal/domain"
)

func TestCodecRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	d := New(now)
	d = SetVehicleType(d, "sedan")
	d = ToggleService(d, item("sedan-ceramic", 899))
	d = SetCustomerInfo(d, domain.CustomerInfo{Name: "Dana", Email: "dana@example.com"})

	raw, err := Encode(d)
	require.NoError(t, err)

	got, reseeded, err := Decode(raw, now)
	require.NoError(t, err)
	assert.False(t, reseeded)
	assert.Equal(t, "sedan", got.VehicleType)
	assert.Equal(t, "Dana", got.CustomerInfo.Name)
	require.Len(t, got.SelectedServices, 1)
	assert.Equal(t, 899.0, got.SelectedServices[0].Price)
}

func TestDecodeSchemaMismatchReseeds(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 1,
		"vehicleType": "truck",
		"selectedServices": [{"id": "old", "title": "Old", "price": 99}],
		"customerInfo": {"name": "Stale"}
	}`)

	got, reseeded, err := Decode(raw, time.Now())
	require.NoError(t, err)
	assert.True(t, reseeded)
	// only the vehicle type survives a discarded blob
	assert.Equal(t, "truck", got.VehicleType)
	assert.Empty(t, got.SelectedServices)
	assert.Empty(t, got.CustomerInfo.Name)
	assert.Equal(t, domain.SchemaVersion, got.SchemaVersion)
}

func TestDecodeUnparsableFails(t *testing.T) {
	_, _, err := Decode([]byte(`{not json`), time.Now())
	assert.Error(t, err)
}

func TestDecodeLegacyLineItems(t *testing.T) {
	raw := []byte(`{
		"schemaVersion": 2,
		"status": "in-progress",
		"selectedServices": [
			{"_id": "legacy-1", "title": "Legacy", "price": "45.50", "qty": 3},
			{"title": "Garbage Price", "price": "not a number"}
		]
	}`)

	got, reseeded, err := Decode(raw, time.Now())
	require.NoError(t, err)
	assert.False(t, reseeded)
	require.Len(t, got.SelectedServices, 2)

	legacy := got.SelectedServices[0]
	assert.Equal(t, "legacy-1", legacy.ID)
	assert.Equal(t, 45.50, legacy.Price)
	assert.Equal(t, 3, legacy.Quantity)

	garbage := got.SelectedServices[1]
	assert.Equal(t, "Garbage Price", garbage.ID)
	assert.Zero(t, garbage.Price)
	assert.Equal(t, 1, garbage.Quantity)
}

func TestDecodeBackfillsTimestamps(t *testing.T) {
	now := time.Now().Truncate(time.Second)

	got, _, err := Decode([]byte(`{"schemaVersion": 2}`), now)
	require.NoError(t, err)
	assert.Equal(t, now, got.CreatedAt)
	assert.Equal(t, now, got.UpdatedAt)
}
