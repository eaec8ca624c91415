package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "ordermanager/internal/adapters/in/http"
	"ordermanager/internal/adapters/out/kafka"
	"ordermanager/internal/adapters/out/memory"
	"ordermanager/internal/adapters/out/metrics"
	"ordermanager/internal/adapters/out/postgres"
	"ordermanager/internal/core/application/usecases/commands"
	"ordermanager/internal/core/application/usecases/queries"
	"ordermanager/internal/core/domain/rules"
	"ordermanager/internal/core/domain/rules/policies"
	"ordermanager/internal/core/ports"
	"ordermanager/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	now        func() time.Time
	uowFactory ports.UnitOfWorkFactory
	registry   *rules.Registry
	evaluator  *rules.Evaluator
	metrics    *metrics.Metrics
	kafka      *kafka.Publisher
}

// NewCompositionRoot wires the application. gormDB is only used by the
// postgres storage driver and may be nil for the memory driver.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	settings, err := LoadRuleSettings(cfg.RulesConfigPath)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
		metrics: metrics.New(),
	}

	c.registry = rules.NewRegistry(logger)
	if err = policies.Register(c.registry, settings, c.now); err != nil {
		return nil, err
	}
	c.evaluator = rules.NewEvaluator(c.registry, logger, rules.WithObserver(c.metrics))

	var next ports.EventPublisher
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		c.kafka, err = kafka.NewPublisher(brokers, cfg.KafkaOrderChangedTopic)
		if err != nil {
			return nil, err
		}
		next = c.kafka
	}
	publisher := c.metrics.CountingPublisher(next)

	switch cfg.Storage() {
	case StorageMemory:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(), publisher, logger)
	case StoragePostgres:
		if gormDB == nil {
			return nil, fmt.Errorf("postgres storage requires a database connection")
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) ticketUoWFactory() commands.TicketUoWFactory {
	return FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateProcessEventCommandHandler() commands.ProcessEventCommandHandler {
	return commands.NewProcessEventCommandHandler(c.orderUoWFactory(), c.ticketUoWFactory(), c.evaluator, c.now, c.logger)
}

func (c *CompositionRoot) CreateUpdateTicketStatusCommandHandler() commands.UpdateTicketStatusCommandHandler {
	return commands.NewUpdateTicketStatusCommandHandler(c.ticketUoWFactory(), c.now)
}

func (c *CompositionRoot) CreateToggleRuleCommandHandler() commands.ToggleRuleCommandHandler {
	return commands.NewToggleRuleCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateSetSmallOrderThresholdCommandHandler() commands.SetSmallOrderThresholdCommandHandler {
	return commands.NewSetSmallOrderThresholdCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderReads{c.uowFactory}, c.evaluator)
}

func (c *CompositionRoot) CreateGetAllowedEventsQueryHandler() queries.GetAllowedEventsQueryHandler {
	return queries.NewGetAllowedEventsQueryHandler(orderReads{c.uowFactory}, c.evaluator)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(orderReads{c.uowFactory})
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(orderReads{c.uowFactory}, eventReads{c.uowFactory})
}

func (c *CompositionRoot) CreateListTicketsQueryHandler() queries.ListTicketsQueryHandler {
	return queries.NewListTicketsQueryHandler(ticketReads{c.uowFactory})
}

func (c *CompositionRoot) CreateGetTicketQueryHandler() queries.GetTicketQueryHandler {
	return queries.NewGetTicketQueryHandler(ticketReads{c.uowFactory})
}

func (c *CompositionRoot) CreateGetTicketsSummaryQueryHandler() queries.GetTicketsSummaryQueryHandler {
	return queries.NewGetTicketsSummaryQueryHandler(ticketReads{c.uowFactory})
}

func (c *CompositionRoot) CreateListRulesQueryHandler() queries.ListRulesQueryHandler {
	return queries.NewListRulesQueryHandler(c.registry)
}

func (c *CompositionRoot) CreateSimulateRulesQueryHandler() queries.SimulateRulesQueryHandler {
	return queries.NewSimulateRulesQueryHandler(orderReads{c.uowFactory}, c.evaluator)
}

func (c *CompositionRoot) CreatePreviewOrderCreationQueryHandler() queries.PreviewOrderCreationQueryHandler {
	return queries.NewPreviewOrderCreationQueryHandler(c.evaluator, c.now)
}

// CreateHTTPServer builds the echo instance with every route.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		ProcessEvent:           c.CreateProcessEventCommandHandler(),
		UpdateTicketStatus:     c.CreateUpdateTicketStatusCommandHandler(),
		ToggleRule:             c.CreateToggleRuleCommandHandler(),
		SetSmallOrderThreshold: c.CreateSetSmallOrderThresholdCommandHandler(),
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetAllowedEvents:       c.CreateGetAllowedEventsQueryHandler(),
		ListOrders:             c.CreateListOrdersQueryHandler(),
		GetOrderHistory:        c.CreateGetOrderHistoryQueryHandler(),
		ListTickets:            c.CreateListTicketsQueryHandler(),
		GetTicket:              c.CreateGetTicketQueryHandler(),
		TicketsSummary:         c.CreateGetTicketsSummaryQueryHandler(),
		ListRules:              c.CreateListRulesQueryHandler(),
		SimulateRules:          c.CreateSimulateRulesQueryHandler(),
		PreviewOrder:           c.CreatePreviewOrderCreationQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.metrics.Handler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetTicketsSummaryQueryHandler(), c.metrics, c.cfg.TicketMetricsSchedule, c.logger)
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() {
	if c.kafka != nil {
		c.kafka.Close()
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}
