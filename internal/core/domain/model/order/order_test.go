package order_test

import (
	"testing"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

func sneakers(t *testing.T, quantity int) order.Item {
	t.Helper()
	item, err := order.NewItem("p-1", "Sneakers", 250000, quantity, "https://cdn.example/p-1.png")
	require.NoError(t, err)
	return item
}

func overflowingItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem("p-2", "Gold watch", 1<<62+2500, 4, "")
	require.NoError(t, err)
	return item
}

func hanoiAddress() order.ShippingAddress {
	return order.NewShippingAddress("Nguyen An", "12 Hang Bai", "Hanoi", "100000", "VN")
}

func TestNewOrder(t *testing.T) {
	sid := kernel.MustSessionID("SESS-1722502800000-abc123xyz789")

	t.Run("should create order with derived fields", func(t *testing.T) {
		o, err := order.NewOrder(sid, []order.Item{sneakers(t, 2)}, hanoiAddress(), 500000, created, created)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.SessionID().IsEqual(sid))
		assert.Equal(t, "ORD-xyz789", o.OrderID())
		assert.Equal(t, "TRACK-xyz789", o.TrackingNumber())
		assert.Equal(t, int64(500000), o.Total())
		itemsTotal, err := o.ItemsTotal()
		require.NoError(t, err)
		assert.Equal(t, int64(500000), itemsTotal)
		assert.Equal(t, order.Processing, o.ShippingStatus())
		assert.Equal(t, created.Add(5*24*time.Hour), o.EstimatedDelivery())
		assert.Equal(t, created, o.CreatedAt())
		assert.True(t, o.IsValidAddress())
	})

	t.Run("should derive status from now at construction", func(t *testing.T) {
		o, err := order.NewOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, created, created.Add(50*time.Hour))

		require.NoError(t, err)
		assert.Equal(t, order.Shipped, o.ShippingStatus())
	})

	t.Run("should fail with zero session ID", func(t *testing.T) {
		o, err := order.NewOrder(kernel.SessionID{}, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, created, created)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should report every invalid argument", func(t *testing.T) {
		o, err := order.NewOrder(sid, nil, hanoiAddress(), -1, time.Time{}, created)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "-1 is negative")
		assert.Contains(t, err.Error(), "createdAt")
	})

	t.Run("should not share the items slice with the caller", func(t *testing.T) {
		items := []order.Item{sneakers(t, 1)}
		o, err := order.NewOrder(sid, items, hanoiAddress(), 250000, created, created)
		require.NoError(t, err)

		items[0] = sneakers(t, 9)
		got := o.Items()
		got[0] = sneakers(t, 7)

		assert.Equal(t, 1, o.Items()[0].Quantity())
	})
}

func TestRestoreOrder(t *testing.T) {
	sid := kernel.MustSessionID("SESS-1722502800000-abc123xyz789")

	t.Run("should keep cached values as stored", func(t *testing.T) {
		stale := created.Add(time.Hour)
		o, err := order.RestoreOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, order.Unknown, stale, created)

		require.NoError(t, err)
		assert.Equal(t, order.Unknown, o.ShippingStatus())
		assert.Equal(t, stale, o.EstimatedDelivery())
	})

	t.Run("should accept records that are not displayable", func(t *testing.T) {
		o, err := order.RestoreOrder(sid, nil, order.ShippingAddress{}, 0, order.Processing, time.Time{}, created)

		require.NoError(t, err)
		require.Error(t, o.ValidateForDisplay())
	})

	t.Run("should fail without createdAt", func(t *testing.T) {
		o, err := order.RestoreOrder(sid, nil, order.ShippingAddress{}, 0, order.Processing, time.Time{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestOrder_RefreshStatus(t *testing.T) {
	sid := kernel.MustSessionID("SESS-1722502800000-abc123xyz789")

	t.Run("should move a stale cache forward and report the change", func(t *testing.T) {
		o, err := order.NewOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, created, created)
		require.NoError(t, err)

		changed := o.RefreshStatus(created.Add(3 * 24 * time.Hour))

		assert.True(t, changed)
		assert.Equal(t, order.InTransit, o.ShippingStatus())
		assert.Equal(t, created, o.CreatedAt())
	})

	t.Run("should report no change when the cache is current", func(t *testing.T) {
		o, err := order.NewOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, created, created)
		require.NoError(t, err)

		assert.False(t, o.RefreshStatus(created.Add(time.Hour)))
		assert.Equal(t, order.Processing, o.ShippingStatus())
	})

	t.Run("should repair a wrong estimated delivery", func(t *testing.T) {
		o, err := order.RestoreOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, order.Processing, created, created)
		require.NoError(t, err)

		assert.True(t, o.RefreshStatus(created))
		assert.Equal(t, created.Add(order.DeliveryWindow), o.EstimatedDelivery())
	})
}

func TestOrder_ValidateForDisplay(t *testing.T) {
	sid := kernel.MustSessionID("SESS-1722502800000-abc123xyz789")

	tests := []struct {
		name    string
		items   []order.Item
		address order.ShippingAddress
		total   int64
		wantErr string
	}{
		{
			name:    "empty items",
			items:   nil,
			address: hanoiAddress(),
			total:   250000,
			wantErr: "items",
		},
		{
			name:    "zero total",
			items:   []order.Item{sneakers(t, 1)},
			address: hanoiAddress(),
			total:   0,
			wantErr: "0 is not greater than 0",
		},
		{
			name:    "total differs from item subtotals",
			items:   []order.Item{sneakers(t, 1)},
			address: hanoiAddress(),
			total:   999,
			wantErr: "does not match item subtotals 250000",
		},
		{
			name:    "item subtotals that overflow",
			items:   []order.Item{overflowingItem(t)},
			address: hanoiAddress(),
			total:   10000,
			wantErr: "item subtotals overflow",
		},
		{
			name:    "incomplete address",
			items:   []order.Item{sneakers(t, 1)},
			address: order.NewShippingAddress("Nguyen An", "", "Hanoi", "100000", "VN"),
			total:   250000,
			wantErr: "shippingAddress",
		},
	}

	for _, tt := range tests {
		t.Run("should reject "+tt.name, func(t *testing.T) {
			o, err := order.RestoreOrder(sid, tt.items, tt.address, tt.total, order.Processing, created, created)
			require.NoError(t, err)

			err = o.ValidateForDisplay()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("should accept a complete order", func(t *testing.T) {
		o, err := order.NewOrder(sid, []order.Item{sneakers(t, 2)}, hanoiAddress(), 500000, created, created)
		require.NoError(t, err)

		assert.NoError(t, o.ValidateForDisplay())
	})
}

func TestDeriveIdentifiers(t *testing.T) {
	t.Run("should use the last six characters of the session ID", func(t *testing.T) {
		sid := kernel.MustSessionID("SESS-1723456789012-k3j9x0q2m7a")

		assert.Equal(t, "ORD-0q2m7a", order.DeriveOrderID(sid))
		assert.Equal(t, "TRACK-0q2m7a", order.DeriveTrackingNumber(sid))
	})

	t.Run("should use the whole ID when it is short", func(t *testing.T) {
		sid := kernel.MustSessionID("abc")

		assert.Equal(t, "ORD-abc", order.DeriveOrderID(sid))
	})

	t.Run("should count characters rather than bytes", func(t *testing.T) {
		sid := kernel.MustSessionID("SESS-1-abcdé")

		assert.Equal(t, "ORD--abcdé", order.DeriveOrderID(sid))
		assert.Equal(t, "TRACK--abcdé", order.DeriveTrackingNumber(sid))
	})

	t.Run("should collide for sessions sharing a suffix", func(t *testing.T) {
		a := kernel.MustSessionID("SESS-1-aaa111222333")
		b := kernel.MustSessionID("SESS-2-bbb111222333")

		assert.Equal(t, order.DeriveOrderID(a), order.DeriveOrderID(b))
	})
}

func TestNewChangedEvent(t *testing.T) {
	sid := kernel.MustSessionID("SESS-1722502800000-abc123xyz789")
	o, err := order.NewOrder(sid, []order.Item{sneakers(t, 1)}, hanoiAddress(), 250000, created, created)
	require.NoError(t, err)

	event := order.NewChangedEvent(o, order.Unknown, order.ReasonConfirmed, created)

	assert.Equal(t, sid.String(), event.SessionID)
	assert.Equal(t, "ORD-xyz789", event.OrderID)
	assert.Equal(t, "TRACK-xyz789", event.TrackingNumber)
	assert.Equal(t, order.Processing, event.Status)
	assert.Equal(t, order.Unknown, event.PreviousStatus)
	assert.Equal(t, order.ReasonConfirmed, event.Reason)
}
