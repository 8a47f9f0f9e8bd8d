package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCoversEveryVehicleType(t *testing.T) {
	for _, vt := range VehicleTypes() {
		services, err := Services(vt)
		require.NoError(t, err, vt)
		assert.NotEmpty(t, services, vt)

		addons, err := Addons(vt)
		require.NoError(t, err, vt)
		assert.NotEmpty(t, addons, vt)
	}
}

func TestUnknownVehicleType(t *testing.T) {
	_, err := Services("motorcycle")
	assert.ErrorIs(t, err, ErrUnknownVehicleType)
}

func TestFindService(t *testing.T) {
	e, err := FindService("sedan", "sedan-detail-full")
	require.NoError(t, err)
	assert.Equal(t, "sedan-detail-full", e.ID)

	_, err = FindService("sedan", "suv-detail-full")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestEntryLineItem(t *testing.T) {
	e, err := FindService("sedan", "sedan-detail-full")
	require.NoError(t, err)

	li := e.LineItem()
	assert.Equal(t, e.ID, li.ID)
	assert.Equal(t, e.Title, li.Title)
	assert.Equal(t, e.Price, li.Price)
	assert.Equal(t, 1, li.Quantity)
	assert.Positive(t, li.DurationMinutes)
}
