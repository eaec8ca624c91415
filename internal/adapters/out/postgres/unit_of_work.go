// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern for orders, support tickets and the order event log.
//
// A unit of work wraps one database transaction. Repositories obtained from it
// run inside that transaction once Begin was called, and on the main
// connection otherwise. Orders written through it are tracked; after a
// successful Commit their pending domain events are handed to the configured
// ports.EventPublisher. A publication failure is logged and does not undo the
// commit.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.EventRepository().Append(ctx, record); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance belongs to one goroutine. Concurrent operations
// must create their own instances.
package postgres

import (
	"context"
	"log/slog"

	"ordermanager/internal/adapters/out/postgres/eventrepo"
	"ordermanager/internal/adapters/out/postgres/orderrepo"
	"ordermanager/internal/adapters/out/postgres/ticketrepo"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// changeSource is implemented by aggregates that record domain events.
type changeSource interface {
	PullChanges() []order.Changed
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM connection.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates the factory. publisher may be nil, in which
// case domain events are dropped after commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, publisher, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "postgres_unit_of_work"),
	}
}

// Create produces a new UnitOfWork with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// Migrate creates or updates the tables of every repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &ticketrepo.TicketDTO{}, &eventrepo.EventDTO{})
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates written during it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance do not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction and then publishes the domain events of the
// tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)
	if err != nil {
		return err
	}

	uow.publish(ctx, tracked)
	return nil
}

// Rollback discards the transaction and forgets the tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active, which makes
// a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
	return err
}

// OrderRepository returns an order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TicketRepository returns a ticket repository bound to the current transaction.
func (uow *GormUnitOfWork) TicketRepository() ports.TicketRepository {
	return ticketrepo.NewGormTicketRepository(uow.conn())
}

// EventRepository returns an event log repository bound to the current transaction.
func (uow *GormUnitOfWork) EventRepository() ports.EventRepository {
	return eventrepo.NewGormEventRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	var changes []order.Changed
	for _, t := range tracked {
		if src, ok := t.Aggregate.(changeSource); ok {
			changes = append(changes, src.PullChanges()...)
		}
	}
	if len(changes) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, changes...); err != nil {
		uow.logger.ErrorContext(ctx, "Failed to publish order changes", "count", len(changes), "error", err)
	}
}
