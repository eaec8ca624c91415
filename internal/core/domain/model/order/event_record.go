package order

import (
	"time"

	"ordermanager/internal/core/domain/model/kernel"
)

// EventRecord is one entry of an order's audit log.
type EventRecord struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Event     Event
	OldState  State
	NewState  State
	Metadata  kernel.Metadata
	CreatedAt time.Time
}

// NewEventRecord builds a log entry with a fresh identifier.
func NewEventRecord(
	orderID kernel.UUID,
	event Event,
	oldState, newState State,
	metadata kernel.Metadata,
	at time.Time,
) EventRecord {
	return EventRecord{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		Event:     event,
		OldState:  oldState,
		NewState:  newState,
		Metadata:  metadata.Clone(),
		CreatedAt: at.UTC(),
	}
}
