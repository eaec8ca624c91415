// Package eventrepo stores the append-only order event log with GORM.
package eventrepo

import (
	"time"

	"ordermanager/internal/adapters/out/postgres/pgtypes"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EventDTO is the row of the order_events table. Seq breaks ties between
// entries written in the same instant.
type EventDTO struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Seq       int64            `gorm:"autoIncrement;uniqueIndex"`
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Event     string           `gorm:"type:varchar(64);not null"`
	OldState  string           `gorm:"type:varchar(32);not null"`
	NewState  string           `gorm:"type:varchar(32);not null"`
	Metadata  pgtypes.Metadata `gorm:"type:jsonb;not null"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime:false"`
}

func (EventDTO) TableName() string {
	return "order_events"
}

func fromDomain(r order.EventRecord) EventDTO {
	return EventDTO{
		ID:        r.ID.Bytes(),
		OrderID:   r.OrderID.Bytes(),
		Event:     r.Event.String(),
		OldState:  r.OldState.String(),
		NewState:  r.NewState.String(),
		Metadata:  pgtypes.Metadata(r.Metadata),
		CreatedAt: r.CreatedAt,
	}
}

func toDomain(dto EventDTO) (order.EventRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.EventRecord{}, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.EventRecord{}, err
	}

	return order.EventRecord{
		ID:        id,
		OrderID:   orderID,
		Event:     order.Event(dto.Event),
		OldState:  order.State(dto.OldState),
		NewState:  order.State(dto.NewState),
		Metadata:  kernel.Metadata(dto.Metadata),
		CreatedAt: dto.CreatedAt.UTC(),
	}, nil
}
