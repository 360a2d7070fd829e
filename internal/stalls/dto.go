package stalls

import (
	"github.com/google/uuid"

	"github.com/Gortyum/feriadigital/pkg/db/models"
)

// CreateStallInput registers a new stall for the vendor in a fair.
type CreateStallInput struct {
	FairID      uuid.UUID `json:"feria_id" validate:"required"`
	StallNumber *string   `json:"numero_puesto,omitempty"`
}

// UpdateStallInput moves the stall or renumbers it.
type UpdateStallInput struct {
	FairID      uuid.UUID `json:"feria_id" validate:"required"`
	StallNumber *string   `json:"numero_puesto,omitempty"`
}

// StallDTO is the browse payload for one stall.
type StallDTO struct {
	ID           uuid.UUID `json:"id"`
	FairID       uuid.UUID `json:"feria_id"`
	FairName     string    `json:"feria,omitempty"`
	StallNumber  *string   `json:"numero_puesto,omitempty"`
	OwnerName    string    `json:"vendedor,omitempty"`
	StallName    *string   `json:"nombre_puesto,omitempty"`
	ProductCount int       `json:"total_productos"`
}

// ProductSummaryDTO lists a product inside a stall detail.
type ProductSummaryDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"nombre"`
	Stock    int       `json:"stock"`
	Category *string   `json:"categoria,omitempty"`
}

// StallDetailDTO expands a stall with its products.
type StallDetailDTO struct {
	StallDTO
	Products []ProductSummaryDTO `json:"productos"`
}

func fromModel(s *models.Stall) StallDTO {
	dto := StallDTO{
		ID:           s.ID,
		FairID:       s.FairID,
		StallNumber:  s.StallNumber,
		ProductCount: len(s.Products),
	}
	if s.Fair != nil {
		dto.FairName = s.Fair.Name
	}
	if s.Owner != nil {
		dto.OwnerName = s.Owner.Name
		dto.StallName = s.Owner.StallName
	}
	return dto
}

func detailFromModel(s *models.Stall) *StallDetailDTO {
	detail := &StallDetailDTO{
		StallDTO: fromModel(s),
		Products: make([]ProductSummaryDTO, 0, len(s.Products)),
	}
	for _, p := range s.Products {
		summary := ProductSummaryDTO{
			ID:    p.ID,
			Name:  p.Name,
			Stock: p.Stock,
		}
		if p.Category != nil {
			summary.Category = &p.Category.Name
		}
		detail.Products = append(detail.Products, summary)
	}
	return detail
}
