package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.Item {
	t.Helper()
	biryani, err := order.NewItem("Chicken Biryani", 2, 180)
	require.NoError(t, err)
	lassi, err := order.NewItem("Sweet Lassi", 1, 60)
	require.NoError(t, err)
	return []order.Item{biryani, lassi}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		testItems(t), 45, time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("starts_pending_and_unassigned", func(t *testing.T) {
		o := newPendingOrder(t)

		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.Courier())
		assert.False(t, o.VendorConfirmed())
		assert.Equal(t, 2*180+60, o.TotalAmount())
		assert.Equal(t, 45, o.DeliveryFee())
	})

	t.Run("requires_items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			nil, 45, time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("rejects_negative_fee", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), -1, time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("rejects_invalid_ids", func(t *testing.T) {
		var zero kernel.UUID
		_, err := order.NewOrder(
			zero, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			testItems(t), 45, time.Now(),
		)
		require.Error(t, err)
	})
}

func TestOrder_ConfirmByVendor(t *testing.T) {
	t.Run("pending_becomes_confirmed", func(t *testing.T) {
		o := newPendingOrder(t)
		before := o.UpdatedAt()

		err := o.ConfirmByVendor(before.Add(time.Second))

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.True(t, o.VendorConfirmed())
		assert.True(t, o.UpdatedAt().After(before))
	})

	t.Run("reconfirm_is_idempotent", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmByVendor(time.Now()))
		afterFirst := o.UpdatedAt()

		err := o.ConfirmByVendor(time.Now().Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Equal(t, afterFirst, o.UpdatedAt(), "no-op must not mutate the order")
	})

	t.Run("confirm_after_claim_only_sets_flag", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID(), time.Now()))

		err := o.ConfirmByVendor(time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.True(t, o.VendorConfirmed())
	})

	t.Run("rejected_on_terminal_order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(time.Now()))

		err := o.ConfirmByVendor(time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	t.Run("claims_pending_order", func(t *testing.T) {
		o := newPendingOrder(t)
		courierID := kernel.NewUUID()

		err := o.AssignCourier(courierID, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courierID))
	})

	t.Run("claims_vendor_confirmed_order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.ConfirmByVendor(time.Now()))

		err := o.AssignCourier(kernel.NewUUID(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
	})

	t.Run("second_claim_fails", func(t *testing.T) {
		o := newPendingOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.AssignCourier(first, time.Now()))

		err := o.AssignCourier(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrAlreadyClaimed)
		assert.True(t, o.Courier().IsEqual(first), "courier is set exactly once")
	})

	t.Run("cannot_claim_cancelled_order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(time.Now()))

		err := o.AssignCourier(kernel.NewUUID(), time.Now())

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_StartPreparing(t *testing.T) {
	t.Run("requires_courier_regardless_of_status", func(t *testing.T) {
		unclaimed := newPendingOrder(t)
		err := unclaimed.StartPreparing(time.Now())
		require.ErrorIs(t, err, order.ErrPreconditionFailed)
		assert.Equal(t, order.Pending, unclaimed.Status(), "order must stay unchanged")

		confirmed := newPendingOrder(t)
		require.NoError(t, confirmed.ConfirmByVendor(time.Now()))
		err = confirmed.StartPreparing(time.Now())
		require.ErrorIs(t, err, order.ErrPreconditionFailed)
	})

	t.Run("succeeds_once_claimed", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID(), time.Now()))

		err := o.StartPreparing(time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("no_duplicate_preparing", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.AssignCourier(kernel.NewUUID(), time.Now()))
		require.NoError(t, o.StartPreparing(time.Now()))

		// Preparing -> Preparing is not an edge.
		err := o.StartPreparing(time.Now())
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_ForwardOnlyLifecycle(t *testing.T) {
	o := newPendingOrder(t)
	require.NoError(t, o.AssignCourier(kernel.NewUUID(), time.Now()))
	require.NoError(t, o.StartPreparing(time.Now()))
	require.NoError(t, o.MarkReady(time.Now()))

	t.Run("no_backward_moves", func(t *testing.T) {
		require.ErrorIs(t, o.StartPreparing(time.Now()), order.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("completes_from_ready", func(t *testing.T) {
		require.NoError(t, o.Complete(time.Now()))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("terminal_rejects_everything", func(t *testing.T) {
		require.ErrorIs(t, o.Cancel(time.Now()), order.ErrInvalidTransition)
		require.ErrorIs(t, o.MarkReady(time.Now()), order.ErrInvalidTransition)
		require.ErrorIs(t, o.Complete(time.Now()), order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	for _, advance := range []struct {
		name  string
		setup func(t *testing.T) *order.Order
	}{
		{"from_pending", func(t *testing.T) *order.Order { return newPendingOrder(t) }},
		{"from_confirmed", func(t *testing.T) *order.Order {
			o := newPendingOrder(t)
			require.NoError(t, o.ConfirmByVendor(time.Now()))
			return o
		}},
		{"from_ready", func(t *testing.T) *order.Order {
			o := newPendingOrder(t)
			require.NoError(t, o.AssignCourier(kernel.NewUUID(), time.Now()))
			require.NoError(t, o.StartPreparing(time.Now()))
			require.NoError(t, o.MarkReady(time.Now()))
			return o
		}},
	} {
		t.Run(advance.name, func(t *testing.T) {
			o := advance.setup(t)
			require.NoError(t, o.Cancel(time.Now()))
			assert.Equal(t, order.Cancelled, o.Status())
		})
	}
}

func TestOrder_LocationSnapshots(t *testing.T) {
	o := newPendingOrder(t)
	assert.Nil(t, o.CustomerLocation())
	assert.Nil(t, o.VendorLocation())
	assert.Nil(t, o.CourierLocation())

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	at := time.Now()

	require.NoError(t, o.SetCourierLocation(point, at))

	snap := o.CourierLocation()
	require.NotNil(t, snap)
	assert.Equal(t, at, snap.At)
	assert.Nil(t, o.CustomerLocation(), "snapshots are independent")
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		courierID := kernel.NewUUID()
		created := time.Now().Add(-time.Hour)
		updated := time.Now()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.Preparing, &courierID, true,
			testItems(t), 59, created, updated,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.Status())
		assert.True(t, o.Courier().IsEqual(courierID))
		assert.Equal(t, created, o.CreatedAt())
		assert.Equal(t, updated, o.UpdatedAt())
	})

	t.Run("rejects_courierless_preparing", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.Preparing, nil, true,
			testItems(t), 59, time.Now(), time.Now(),
		)
		require.Error(t, err)
	})

	t.Run("rejects_pending_with_courier", func(t *testing.T) {
		courierID := kernel.NewUUID()
		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			order.Pending, &courierID, false,
			testItems(t), 59, time.Now(), time.Now(),
		)
		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.NoError(t, newPendingOrder(t).Validate())
}
