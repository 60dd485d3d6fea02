package queries_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"storefront/internal/adapters/out/keyvalue/memory"
	"storefront/internal/adapters/out/keyvalue/orderrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day     = 24 * time.Hour
	day0    = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.ChangedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event order.ChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type fixture struct {
	kv        *memory.Store
	orders    *orderrepo.OrderRepository
	publisher *recordingPublisher
}

func newFixture() fixture {
	kv := memory.NewStore()
	return fixture{kv: kv, orders: orderrepo.NewOrderRepository(kv), publisher: &recordingPublisher{}}
}

func (f fixture) put(t *testing.T, sessionID string, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewItem("p1", "Ao dai", 10000, 2, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.MustSessionID(sessionID), []order.Item{item},
		order.NewShippingAddress("An", "1 Le Loi", "HCMC", "700000", "VN"), 20000, createdAt, createdAt)
	require.NoError(t, err)
	require.NoError(t, f.orders.Put(t.Context(), o))
	return o
}

// putRaw stores a record verbatim and indexes it through a valid put of
// another session so the index is not rebuilt.
func (f fixture) putRaw(t *testing.T, sessionID string, record map[string]any) {
	t.Helper()
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(t.Context(), "order_"+sessionID, string(raw)))

	index, err := f.orders.ListIndexed(t.Context())
	require.NoError(t, err)
	entries := []string{sessionID}
	for _, id := range index {
		if id.String() != sessionID {
			entries = append(entries, id.String())
		}
	}
	rawIndex, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, f.kv.Set(t.Context(), "order_list", string(rawIndex)))
}

func (f fixture) list(t *testing.T, now time.Time) []queries.OrderResponse {
	t.Helper()
	query, err := queries.NewListValidOrdersQuery(now)
	require.NoError(t, err)
	result, err := queries.NewListValidOrdersQueryHandler(f.orders, f.publisher, discard).Handle(t.Context(), query)
	require.NoError(t, err)
	return result
}

func validRecord(createdAt string) map[string]any {
	return map[string]any{
		"items":           []map[string]any{{"id": "p1", "name": "Ao dai", "price": 10000, "quantity": 2}},
		"total":           20000,
		"shippingAddress": map[string]any{"name": "An", "address": "1 Le Loi", "city": "HCMC", "postalCode": "700000", "country": "VN"},
		"shippingStatus":  "Processing",
		"createdAt":       createdAt,
	}
}

func TestListValidOrdersQueryHandler_Handle(t *testing.T) {
	t.Run("should return orders newest first", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)
		f.put(t, "SESS-3-cccccc", day0.Add(2*day))
		f.put(t, "SESS-2-bbbbbb", day0.Add(day))

		result := f.list(t, day0.Add(3*day))

		require.Len(t, result, 3)
		assert.Equal(t, "ORD-cccccc", result[0].OrderID)
		assert.Equal(t, "ORD-bbbbbb", result[1].OrderID)
		assert.Equal(t, "ORD-aaaaaa", result[2].OrderID)
	})

	t.Run("should break createdAt ties by session ID", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-2-bbbbbb", day0)
		f.put(t, "SESS-1-aaaaaa", day0)

		result := f.list(t, day0)

		require.Len(t, result, 2)
		assert.Equal(t, "SESS-1-aaaaaa", result[0].SessionID)
	})

	t.Run("should recompute and persist a stale status", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)
		now := day0.Add(3*day + time.Hour)

		result := f.list(t, now)

		require.Len(t, result, 1)
		assert.Equal(t, order.InTransit, result[0].ShippingStatus)
		assert.Equal(t, day0.Add(5*day), result[0].EstimatedDelivery)
		assert.Equal(t, day0, result[0].CreatedAt)

		stored, err := f.orders.Get(t.Context(), kernel.MustSessionID("SESS-1-aaaaaa"))
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, stored.ShippingStatus())
		assert.True(t, day0.Equal(stored.CreatedAt()))

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, order.ReasonStatusRefreshed, f.publisher.events[0].Reason)
		assert.Equal(t, order.Processing, f.publisher.events[0].PreviousStatus)
		assert.Equal(t, order.InTransit, f.publisher.events[0].Status)
	})

	t.Run("should not rewrite a current status", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)

		_ = f.list(t, day0.Add(time.Hour))

		assert.Empty(t, f.publisher.events)
	})

	t.Run("should keep the refreshed value when publishing fails", func(t *testing.T) {
		f := newFixture()
		f.publisher.err = errors.New("broker down")
		f.put(t, "SESS-1-aaaaaa", day0)

		result := f.list(t, day0.Add(6*day))

		require.Len(t, result, 1)
		assert.Equal(t, order.Delivered, result[0].ShippingStatus)
	})

	t.Run("should exclude orders that cannot be displayed", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)

		noItems := validRecord("2025-08-01T09:00:00Z")
		noItems["items"] = []any{}
		f.putRaw(t, "SESS-2-bbbbbb", noItems)

		zeroTotal := validRecord("2025-08-01T09:00:00Z")
		zeroTotal["total"] = 0
		f.putRaw(t, "SESS-3-cccccc", zeroTotal)

		partialAddress := validRecord("2025-08-01T09:00:00Z")
		partialAddress["shippingAddress"] = map[string]any{"name": "An", "city": "HCMC"}
		f.putRaw(t, "SESS-4-dddddd", partialAddress)

		mismatch := validRecord("2025-08-01T09:00:00Z")
		mismatch["total"] = 15000
		f.putRaw(t, "SESS-5-eeeeee", mismatch)

		result := f.list(t, day0.Add(3*day))

		require.Len(t, result, 1)
		assert.Equal(t, "SESS-1-aaaaaa", result[0].SessionID)

		raw, _, err := f.kv.Get(t.Context(), "order_SESS-3-cccccc")
		require.NoError(t, err)
		assert.Contains(t, raw, `"shippingStatus":"Processing"`, "invalid records are not rewritten")
	})

	t.Run("should skip corrupt and missing records", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)
		require.NoError(t, f.kv.Set(t.Context(), "order_SESS-2-bbbbbb", "{broken"))
		require.NoError(t, f.kv.Set(t.Context(), "order_list", `["SESS-1-aaaaaa","SESS-2-bbbbbb","SESS-9-zzzzzz"]`))

		result := f.list(t, day0)

		require.Len(t, result, 1)
		assert.Equal(t, "SESS-1-aaaaaa", result[0].SessionID)
	})

	t.Run("should list records only reachable through the rebuilt index", func(t *testing.T) {
		f := newFixture()
		raw, err := json.Marshal(validRecord("2025-08-01T09:00:00.000Z"))
		require.NoError(t, err)
		require.NoError(t, f.kv.Set(t.Context(), "order_SESS-1-aaaaaa", string(raw)))

		result := f.list(t, day0)

		require.Len(t, result, 1)
		assert.Equal(t, "TRACK-aaaaaa", result[0].TrackingNumber)
		assert.True(t, result[0].IsValidAddress)
		assert.Equal(t, int64(20000), result[0].Items[0].Subtotal)
	})

	t.Run("should return an empty list for an empty store", func(t *testing.T) {
		assert.Empty(t, newFixture().list(t, day0))
	})

	t.Run("should reject a zero observation time", func(t *testing.T) {
		_, err := queries.NewListValidOrdersQuery(time.Time{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject a query built without a constructor", func(t *testing.T) {
		f := newFixture()

		_, err := queries.NewListValidOrdersQueryHandler(f.orders, f.publisher, discard).
			Handle(t.Context(), queries.ListValidOrdersQuery{})

		assert.ErrorIs(t, err, queries.ErrListValidOrdersQueryIsNotConstructed)
	})
}

func TestFindOrderByOrderIDQueryHandler_Handle(t *testing.T) {
	find := func(t *testing.T, f fixture, orderID string, now time.Time) (queries.OrderResponse, error) {
		t.Helper()
		query, err := queries.NewFindOrderByOrderIDQuery(orderID, now)
		require.NoError(t, err)
		return queries.NewFindOrderByOrderIDQueryHandler(f.orders, f.publisher, discard).Handle(t.Context(), query)
	}

	t.Run("should find an order by its derived ID", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)
		f.put(t, "SESS-2-bbbbbb", day0)

		result, err := find(t, f, "ORD-bbbbbb", day0.Add(2*day))

		require.NoError(t, err)
		assert.Equal(t, "SESS-2-bbbbbb", result.SessionID)
		assert.Equal(t, order.Shipped, result.ShippingStatus)
	})

	t.Run("should prefer the newest order when IDs collide", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-shared", day0)
		f.put(t, "SESS-2-shared", day0.Add(day))

		result, err := find(t, f, "ORD-shared", day0.Add(2*day))

		require.NoError(t, err)
		assert.Equal(t, "SESS-2-shared", result.SessionID)
	})

	t.Run("should return not found for an unknown ID", func(t *testing.T) {
		f := newFixture()
		f.put(t, "SESS-1-aaaaaa", day0)

		_, err := find(t, f, "ORD-nope00", day0)

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("should require an order ID", func(t *testing.T) {
		_, err := queries.NewFindOrderByOrderIDQuery("  ", day0)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
