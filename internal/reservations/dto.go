package reservations

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gortyum/feriadigital/pkg/db/models"
)

// CreateReservationInput holds the buyer's reservation payload.
type CreateReservationInput struct {
	ProductID uuid.UUID `json:"producto_id" validate:"required"`
	Quantity  int       `json:"cantidad" validate:"required,gt=0"`
}

// ReservationDTO is the reservation payload returned to clients.
type ReservationDTO struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   *uuid.UUID `json:"producto_id,omitempty"`
	ProductName string     `json:"producto,omitempty"`
	Quantity    int        `json:"cantidad"`
	ReservedOn  time.Time  `json:"fecha_reserva"`
	BuyerName   string     `json:"cliente,omitempty"`
	FairName    string     `json:"feria,omitempty"`
	StallName   *string    `json:"nombre_puesto,omitempty"`
}

func fromModel(r *models.Reservation) ReservationDTO {
	dto := ReservationDTO{
		ID:         r.ID,
		ProductID:  r.ProductID,
		Quantity:   r.Quantity,
		ReservedOn: r.ReservedOn,
	}
	if r.Buyer != nil {
		dto.BuyerName = r.Buyer.Name
	}
	if r.Product != nil {
		dto.ProductName = r.Product.Name
		if r.Product.Stall != nil {
			if r.Product.Stall.Fair != nil {
				dto.FairName = r.Product.Stall.Fair.Name
			}
			if r.Product.Stall.Owner != nil {
				dto.StallName = r.Product.Stall.Owner.StallName
			}
		}
	}
	return dto
}
