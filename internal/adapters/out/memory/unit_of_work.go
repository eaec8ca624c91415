package memory

import (
	"context"
	"errors"
	"log/slog"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback outside a transaction.
var ErrNoTransaction = errors.New("memory: no active transaction")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type changeSource interface {
	PullChanges() []order.Changed
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store     *Store
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewUnitOfWorkFactory creates the factory. publisher may be nil.
func NewUnitOfWorkFactory(store *Store, publisher ports.EventPublisher, logger *slog.Logger) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "memory_unit_of_work"),
	}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{factory: f}
}

// UnitOfWork stages writes until Commit.
type UnitOfWork struct {
	factory *UnitOfWorkFactory
	active  bool
	staged  []func(*Store) error
	tracked []trackedAggregate
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit applies the staged writes atomically and then publishes the changes
// of the tracked orders. A write that no longer applies fails the whole commit.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	store := uow.factory.store
	if err := store.apply(uow.staged); err != nil {
		uow.reset()
		return err
	}

	tracked := uow.tracked
	uow.reset()
	uow.publish(ctx, tracked)
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.reset()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{store: uow.factory.store, uow: uow}
}

func (uow *UnitOfWork) TicketRepository() ports.TicketRepository {
	return &TicketRepository{store: uow.factory.store, uow: uow}
}

func (uow *UnitOfWork) EventRepository() ports.EventRepository {
	return &EventRepository{store: uow.factory.store, uow: uow}
}

// TrackAggregate registers an aggregate written in this unit of work.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.tracked = append(uow.tracked, trackedAggregate{ID: id, Aggregate: aggregate})
}

// write stages fn inside a transaction, or applies it right away outside one.
func (uow *UnitOfWork) write(fn func(*Store) error) error {
	if !uow.active {
		return uow.factory.store.apply([]func(*Store) error{fn})
	}
	uow.staged = append(uow.staged, fn)
	return nil
}

func (uow *UnitOfWork) reset() {
	uow.active = false
	uow.staged = nil
	uow.tracked = nil
}

func (uow *UnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	var changes []order.Changed
	for _, t := range tracked {
		if src, ok := t.Aggregate.(changeSource); ok {
			changes = append(changes, src.PullChanges()...)
		}
	}
	if len(changes) == 0 || uow.factory.publisher == nil {
		return
	}
	if err := uow.factory.publisher.Publish(ctx, changes...); err != nil {
		uow.factory.logger.ErrorContext(ctx, "Failed to publish order changes", "count", len(changes), "error", err)
	}
}

// apply runs every write against a copy of the store and swaps it in only when
// all of them succeed.
func (s *Store) apply(writes []func(*Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := &Store{
		orders:  make(map[kernel.UUID]orderRow, len(s.orders)),
		tickets: make(map[kernel.UUID]ticketRow, len(s.tickets)),
		events:  s.events,
		seq:     s.seq,
	}
	for k, v := range s.orders {
		draft.orders[k] = v
	}
	for k, v := range s.tickets {
		draft.tickets[k] = v
	}

	for _, write := range writes {
		if err := write(draft); err != nil {
			return err
		}
	}

	s.orders = draft.orders
	s.tickets = draft.tickets
	s.events = draft.events
	s.seq = draft.seq
	return nil
}
