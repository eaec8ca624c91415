// Package ticketrepo persists support tickets with GORM.
package ticketrepo

import (
	"time"

	"ordermanager/internal/adapters/out/postgres/pgtypes"
	"ordermanager/internal/core/domain/model/kernel"
	"ordermanager/internal/core/domain/model/ticket"

	"github.com/google/uuid"
)

// TicketDTO is the row of the support_tickets table.
type TicketDTO struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Reason    string           `gorm:"type:text;not null"`
	Amount    float64          `gorm:"type:numeric(12,2);not null"`
	Status    string           `gorm:"type:varchar(32);not null;index"`
	Metadata  pgtypes.Metadata `gorm:"type:jsonb;not null"`
	CreatedAt time.Time        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time        `gorm:"not null;autoUpdateTime:false"`
}

func (TicketDTO) TableName() string {
	return "support_tickets"
}

func fromDomain(t *ticket.Ticket) TicketDTO {
	return TicketDTO{
		ID:        t.ID().Bytes(),
		OrderID:   t.OrderID().Bytes(),
		Reason:    t.Reason(),
		Amount:    t.Amount(),
		Status:    t.Status().String(),
		Metadata:  pgtypes.Metadata(t.Metadata()),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

func toDomain(dto TicketDTO) (*ticket.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := ticket.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return ticket.RestoreTicket(id, orderID, dto.Reason, dto.Amount, status,
		kernel.Metadata(dto.Metadata), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
