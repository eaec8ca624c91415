package ticketrepo

import (
	"context"
	"errors"

	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"
	"ordermanager/internal/core/ports"
	"ordermanager/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTicketRepository implements TicketRepository using GORM.
type GormTicketRepository struct {
	db *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the status, metadata and update time of an existing ticket.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "metadata", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", aggregate.ID().String())
	}
	return nil
}

func (r *GormTicketRepository) Get(ctx context.Context, id kernel.UUID) (*ticket.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormTicketRepository) GetAll(ctx context.Context) ([]*ticket.Ticket, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *GormTicketRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*ticket.Ticket, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.find(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()))
}

// StatsByStatus counts tickets and averages their amount per status.
func (r *GormTicketRepository) StatsByStatus(ctx context.Context) ([]ports.TicketStatusStats, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*) AS count,
			COALESCE(AVG(amount), 0)::float8 AS avg_amount
		FROM support_tickets
		GROUP BY status
		ORDER BY count DESC, status
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]ports.TicketStatusStats, 0)
	for rows.Next() {
		var (
			rawStatus string
			stat      ports.TicketStatusStats
		)
		if err = rows.Scan(&rawStatus, &stat.Count, &stat.AvgAmount); err != nil {
			return nil, err
		}

		if stat.Status, err = ticket.ParseStatus(rawStatus); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *GormTicketRepository) find(db *gorm.DB) ([]*ticket.Ticket, error) {
	var dtos []TicketDTO
	if err := db.Order("created_at DESC, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}
