// Package orderrepo persists order aggregates with GORM.
package orderrepo

import (
	"time"

	"ordermanager/internal/adapters/out/postgres/pgtypes"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the row of the orders table.
type OrderDTO struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProductIDs pq.StringArray   `gorm:"type:text[];not null"`
	Amount     float64          `gorm:"type:numeric(12,2);not null"`
	State      string           `gorm:"type:varchar(32);not null;index"`
	Metadata   pgtypes.Metadata `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt  time.Time        `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's naming convention.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:         o.ID().Bytes(),
		ProductIDs: pq.StringArray(o.ProductIDs()),
		Amount:     o.Amount(),
		State:      o.State().String(),
		Metadata:   pgtypes.Metadata(o.Metadata()),
		CreatedAt:  o.CreatedAt(),
		UpdatedAt:  o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, []string(dto.ProductIDs), dto.Amount, state,
		kernel.Metadata(dto.Metadata), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
