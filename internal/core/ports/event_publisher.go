package ports

import (
	"context"

	"ordermanager/internal/core/domain/model/order"
)

// EventPublisher sends order domain events to the outside world after the
// transaction that produced them has committed.
type EventPublisher interface {
	Publish(ctx context.Context, changes ...order.Changed) error
}
