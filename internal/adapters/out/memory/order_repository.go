package memory

import (
	"context"
	"fmt"
	"sort"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a Store.
type OrderRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := orderRowOf(aggregate)
	if err := r.uow.write(func(s *Store) error {
		if _, exists := s.orders[row.id]; exists {
			return fmt.Errorf("order %s already exists", row.id)
		}
		row.seq = s.nextSeq()
		s.orders[row.id] = row
		return nil
	}); err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if !r.exists(aggregate.ID()) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	row := orderRowOf(aggregate)
	if err := r.uow.write(func(s *Store) error {
		current, ok := s.orders[row.id]
		if !ok {
			return errs.NewObjectNotFoundError("order", row.id.String())
		}
		row.seq = current.seq
		s.orders[row.id] = row
		return nil
	}); err != nil {
		return err
	}

	r.uow.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	row, ok := r.store.orders[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return row.restore()
}

// GetAll returns every order, newest first.
func (r *OrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.store.mu.RLock()
	rows := make([]orderRow, 0, len(r.store.orders))
	for _, row := range r.store.orders {
		rows = append(rows, row)
	}
	r.store.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].seq > rows[j].seq
	})

	orders := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.restore()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) exists(id kernel.UUID) bool {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.orders[id]
	return ok
}
