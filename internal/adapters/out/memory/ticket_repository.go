package memory

import (
	"context"
	"fmt"
	"sort"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/ports"
	"ordermanager/internal/pkg/errs"
)

// TicketRepository implements ports.TicketRepository over a Store.
type TicketRepository struct {
	store *Store
	uow   *UnitOfWork
}

func (r *TicketRepository) Add(_ context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := ticketRowOf(aggregate)
	return r.uow.write(func(s *Store) error {
		if _, exists := s.tickets[row.id]; exists {
			return fmt.Errorf("ticket %s already exists", row.id)
		}
		row.seq = s.nextSeq()
		s.tickets[row.id] = row
		return nil
	})
}

func (r *TicketRepository) Update(_ context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.RLock()
	_, ok := r.store.tickets[aggregate.ID()]
	r.store.mu.RUnlock()
	if !ok {
		return errs.NewObjectNotFoundError("ticket", aggregate.ID().String())
	}

	row := ticketRowOf(aggregate)
	return r.uow.write(func(s *Store) error {
		current, ok := s.tickets[row.id]
		if !ok {
			return errs.NewObjectNotFoundError("ticket", row.id.String())
		}
		row.seq = current.seq
		s.tickets[row.id] = row
		return nil
	})
}

func (r *TicketRepository) Get(_ context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	row, ok := r.store.tickets[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("ticket", id.String())
	}
	return row.restore()
}

func (r *TicketRepository) GetAll(_ context.Context) ([]*ticket.Ticket, error) {
	return r.list(func(ticketRow) bool { return true })
}

func (r *TicketRepository) GetByOrderID(_ context.Context, orderID kernel.UUID) ([]*ticket.Ticket, error) {
	return r.list(func(row ticketRow) bool { return row.orderID.IsEqual(orderID) })
}

// StatsByStatus groups tickets by status, largest group first.
func (r *TicketRepository) StatsByStatus(_ context.Context) ([]ports.TicketStatusStats, error) {
	r.store.mu.RLock()
	sums := make(map[ticket.Status]float64)
	counts := make(map[ticket.Status]int64)
	for _, row := range r.store.tickets {
		sums[row.status] += row.amount
		counts[row.status]++
	}
	r.store.mu.RUnlock()

	stats := make([]ports.TicketStatusStats, 0, len(counts))
	for status, count := range counts {
		stats = append(stats, ports.TicketStatusStats{
			Status:    status,
			Count:     count,
			AvgAmount: sums[status] / float64(count),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Status < stats[j].Status
	})
	return stats, nil
}

func (r *TicketRepository) list(keep func(ticketRow) bool) ([]*ticket.Ticket, error) {
	r.store.mu.RLock()
	rows := make([]ticketRow, 0)
	for _, row := range r.store.tickets {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].createdAt.Equal(rows[j].createdAt) {
			return rows[i].createdAt.After(rows[j].createdAt)
		}
		return rows[i].seq > rows[j].seq
	})

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := row.restore()
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
