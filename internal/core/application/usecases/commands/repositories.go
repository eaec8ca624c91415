// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"ordermanager/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// EventRepoFactory provides access to the order event log within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// TicketRepoFactory provides access to ticket repository within a transaction.
	TicketRepoFactory interface {
		TicketRepository() ports.TicketRepository
	}

	// OrderUoW manages transactions that change an order and append to its log.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		EventRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TicketUoW manages transactions for ticket-only operations.
	TicketUoW interface {
		TxManager
		TicketRepoFactory
	}

	// TicketUoWFactory creates new ticket unit of work instances.
	TicketUoWFactory interface {
		Create() TicketUoW
	}
)
