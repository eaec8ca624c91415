package commands_test

import (
	"context"

	"ordermanager/internal/core/application/usecases/commands"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// anyContext matches the span context a handler passes to its unit of work.
var anyContext = mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Append(ctx context.Context, record order.EventRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockEventRepository) GetByOrderID(ctx context.Context, id kernel.UUID) ([]order.EventRecord, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]order.EventRecord), args.Error(1)
}

type MockTicketRepository struct{ mock.Mock }

func (m *MockTicketRepository) Add(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*ticket.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketRepository) GetAll(ctx context.Context) ([]*ticket.Ticket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) GetByOrderID(ctx context.Context, id kernel.UUID) ([]*ticket.Ticket, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*ticket.Ticket), args.Error(1)
}

func (m *MockTicketRepository) StatsByStatus(ctx context.Context) ([]ports.TicketStatusStats, error) {
	args := m.Called(ctx)
	return args.Get(0).([]ports.TicketStatusStats), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTicketUoW struct{ mock.Mock }

func (m *MockTicketUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTicketUoW) TicketRepository() ports.TicketRepository {
	args := m.Called()
	return args.Get(0).(ports.TicketRepository)
}

type MockTicketUoWFactory struct{ mock.Mock }

func (m *MockTicketUoWFactory) Create() commands.TicketUoW {
	args := m.Called()
	return args.Get(0).(commands.TicketUoW)
}
