package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func fixtureItems(t *testing.T) []order.Item {
	t.Helper()

	biryani, err := order.NewItem("Chicken Biryani", 2, 180)
	require.NoError(t, err)
	lassi, err := order.NewItem("Sweet Lassi", 1, 60)
	require.NoError(t, err)

	return []order.Item{biryani, lassi}
}

func fixturePoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()

	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func fixtureOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		fixtureItems(t), 45, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func fixtureCourier(t *testing.T) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Ravi")
	require.NoError(t, err)
	return c
}
