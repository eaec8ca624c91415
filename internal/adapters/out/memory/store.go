// Package memory keeps orders, tickets and the event log in process memory.
// It implements the same unit of work contract as the postgres adapter and is
// used for local runs and tests.
//
// Writes made through a unit of work are staged and applied to the store when
// it commits, so a rolled back unit of work leaves no trace. Aggregates are
// stored as rows and rebuilt on every read: callers never share state with
// the store.
package memory

import (
	"sync"
	"time"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
)

type orderRow struct {
	id         kernel.UUID
	productIDs []string
	amount     float64
	state      order.State
	metadata   kernel.Metadata
	createdAt  time.Time
	updatedAt  time.Time
	seq        uint64
}

type ticketRow struct {
	id        kernel.UUID
	orderID   kernel.UUID
	reason    string
	amount    float64
	status    ticket.Status
	metadata  kernel.Metadata
	createdAt time.Time
	updatedAt time.Time
	seq       uint64
}

// Store is the shared in-memory database.
type Store struct {
	mu      sync.RWMutex
	orders  map[kernel.UUID]orderRow
	tickets map[kernel.UUID]ticketRow
	events  []order.EventRecord
	seq     uint64
}

func NewStore() *Store {
	return &Store{
		orders:  make(map[kernel.UUID]orderRow),
		tickets: make(map[kernel.UUID]ticketRow),
	}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func orderRowOf(o *order.Order) orderRow {
	return orderRow{
		id:         o.ID(),
		productIDs: o.ProductIDs(),
		amount:     o.Amount(),
		state:      o.State(),
		metadata:   o.Metadata(),
		createdAt:  o.CreatedAt(),
		updatedAt:  o.UpdatedAt(),
	}
}

func (r orderRow) restore() (*order.Order, error) {
	return order.RestoreOrder(r.id, append([]string(nil), r.productIDs...), r.amount, r.state,
		r.metadata, r.createdAt, r.updatedAt)
}

func ticketRowOf(t *ticket.Ticket) ticketRow {
	return ticketRow{
		id:        t.ID(),
		orderID:   t.OrderID(),
		reason:    t.Reason(),
		amount:    t.Amount(),
		status:    t.Status(),
		metadata:  t.Metadata(),
		createdAt: t.CreatedAt(),
		updatedAt: t.UpdatedAt(),
	}
}

func (r ticketRow) restore() (*ticket.Ticket, error) {
	return ticket.RestoreTicket(r.id, r.orderID, r.reason, r.amount, r.status, r.metadata, r.createdAt, r.updatedAt)
}
