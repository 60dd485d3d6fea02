package cmd

import (
	"log/slog"

	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/keyvalue/memory"
	"storefront/internal/adapters/out/keyvalue/orderrepo"
	"storefront/internal/adapters/out/postgres/kvrepo"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs   Config
	drafts    ports.DraftRepository
	orders    ports.OrderRepository
	publisher ports.OrderEventPublisher
	producer  *kafka.OrderChangedProducer
	clock     kernel.Clock
	logger    *slog.Logger
}

// NewCompositionRoot wires the adapters selected by the config. gormDB is
// only used with the postgres storage driver and may be nil otherwise.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var store ports.KeyValueStore
	if configs.StorageDriver == StoragePostgres {
		store = kvrepo.NewGormKeyValueRepository(gormDB)
	} else {
		store = memory.NewStore()
	}

	root := CompositionRoot{
		configs:   configs,
		drafts:    orderrepo.NewDraftRepository(store),
		orders:    orderrepo.NewOrderRepository(store),
		publisher: kafka.NoopPublisher{},
		clock:     kernel.SystemClock{},
		logger:    logger,
	}

	if len(configs.Kafka.Brokers) > 0 {
		root.producer = kafka.NewOrderChangedProducer(configs.Kafka.Brokers, configs.Kafka.OrderChangedTopic)
		root.publisher = root.producer
	}

	return root
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	return commands.NewStartCheckoutCommandHandler(c.drafts, c.clock)
}

func (c *CompositionRoot) CreateStageCartCommandHandler() commands.StageCartCommandHandler {
	return commands.NewStageCartCommandHandler(c.drafts)
}

func (c *CompositionRoot) CreateStageAddressCommandHandler() commands.StageAddressCommandHandler {
	return commands.NewStageAddressCommandHandler(c.drafts)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(
		c.drafts,
		c.orders,
		services.NewOrderAssembler(c.configs.AssemblyPolicy()),
		c.publisher,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateRepairIndexCommandHandler() commands.RepairIndexCommandHandler {
	return commands.NewRepairIndexCommandHandler(c.orders, c.logger)
}

func (c *CompositionRoot) CreateListValidOrdersQueryHandler() queries.ListValidOrdersQueryHandler {
	return queries.NewListValidOrdersQueryHandler(c.orders, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFindOrderByOrderIDQueryHandler() queries.FindOrderByOrderIDQueryHandler {
	return queries.NewFindOrderByOrderIDQueryHandler(c.orders, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateStartCheckoutCommandHandler(),
		c.CreateStageCartCommandHandler(),
		c.CreateStageAddressCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateListValidOrdersQueryHandler(),
		c.CreateFindOrderByOrderIDQueryHandler(),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateListValidOrdersQueryHandler(),
		c.CreateRepairIndexCommandHandler(),
		c.clock,
		c.configs.Schedules(),
		c.logger,
	)
}

// Close flushes the event producer, if any.
func (c *CompositionRoot) Close() error {
	if c.producer == nil {
		return nil
	}
	return c.producer.Close()
}
