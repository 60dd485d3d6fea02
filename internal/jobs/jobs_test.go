package jobs_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/keyvalue/memory"
	"storefront/internal/adapters/out/keyvalue/orderrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)
	discard = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func seedOrder(t *testing.T, orders *orderrepo.OrderRepository) {
	t.Helper()
	item, err := order.NewItem("p1", "Ao dai", 10000, 2, "")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.MustSessionID("SESS-1-aaaaaa"), []order.Item{item},
		order.NewShippingAddress("An", "1 Le Loi", "HCMC", "700000", "VN"), 20000, created, created)
	require.NoError(t, err)
	require.NoError(t, orders.Put(t.Context(), o))
}

func TestStatusRefreshJob_RunOnce(t *testing.T) {
	orders := orderrepo.NewOrderRepository(memory.NewStore())
	seedOrder(t, orders)
	handler := queries.NewListValidOrdersQueryHandler(orders, kafka.NoopPublisher{}, discard)
	job := jobs.NewStatusRefreshJob(handler, kernel.FixedClock(created.Add(6*24*time.Hour)), "@every 1h", discard)

	visited, err := job.RunOnce(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 1, visited)
	stored, err := orders.Get(t.Context(), kernel.MustSessionID("SESS-1-aaaaaa"))
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, stored.ShippingStatus())
}

func TestJobManager(t *testing.T) {
	newManager := func(schedules jobs.Schedules) *jobs.JobManager {
		orders := orderrepo.NewOrderRepository(memory.NewStore())
		return jobs.NewJobManager(
			queries.NewListValidOrdersQueryHandler(orders, kafka.NoopPublisher{}, discard),
			commands.NewRepairIndexCommandHandler(orders, discard),
			kernel.SystemClock{},
			schedules,
			discard,
		)
	}

	t.Run("should start and stop with valid schedules", func(t *testing.T) {
		manager := newManager(jobs.Schedules{StatusRefresh: "@every 1h", IndexRepair: "@daily"})

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("should reject an invalid status refresh schedule", func(t *testing.T) {
		manager := newManager(jobs.Schedules{StatusRefresh: "every hour", IndexRepair: "@daily"})

		err := manager.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status refresh job")
	})

	t.Run("should reject an invalid index repair schedule", func(t *testing.T) {
		manager := newManager(jobs.Schedules{StatusRefresh: "@every 1h", IndexRepair: "* * *"})

		err := manager.StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "index repair job")
	})
}
