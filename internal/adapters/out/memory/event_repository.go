package memory

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
)

// EventRepository implements ports.EventRepository over a Store.
type EventRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *EventRepository) Append(_ context.Context, record order.EventRecord) error {
	record.Metadata = record.Metadata.Clone()
	return r.uow.write(func(s *Store) error {
		s.events = append(s.events[:len(s.events):len(s.events)], record)
		return nil
	})
}

// GetByOrderID returns the entries of one order in append order.
func (r *EventRepository) GetByOrderID(_ context.Context, orderID kernel.UUID) ([]order.EventRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := make([]order.EventRecord, 0)
	for _, record := range r.store.events {
		if record.OrderID.IsEqual(orderID) {
			record.Metadata = record.Metadata.Clone()
			records = append(records, record)
		}
	}
	return records, nil
}
