package eventrepo

import (
	"context"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Append(ctx context.Context, record order.EventRecord) error {
	if err := record.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrderID returns the log of one order, oldest first.
func (r *GormEventRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]order.EventRecord, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]order.EventRecord, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
