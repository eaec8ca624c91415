package order

import (
	"time"

	"ordermanager/internal/core/domain/model/kernel"
)

// Changed is the domain event recorded when an order is created or transitions.
// From is empty for creation.
type Changed struct {
	OrderID    kernel.UUID
	Event      Event
	From       State
	To         State
	Amount     float64
	OccurredAt time.Time
}
