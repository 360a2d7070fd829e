package products

import (
	"github.com/google/uuid"

	"github.com/Gortyum/feriadigital/pkg/db/models"
)

// CreateProductInput holds the validated payload to create a product. The
// stall id names which of the vendor's stalls lists it.
type CreateProductInput struct {
	StallID    uuid.UUID  `json:"puesto_id" validate:"required"`
	Name       string     `json:"nombre" validate:"required"`
	Stock      int        `json:"stock" validate:"gte=0"`
	CategoryID *uuid.UUID `json:"categoria_id,omitempty"`
}

// UpdateProductInput overwrites the product's editable fields.
type UpdateProductInput struct {
	Name       string     `json:"nombre" validate:"required"`
	Stock      int        `json:"stock" validate:"gte=0"`
	CategoryID *uuid.UUID `json:"categoria_id,omitempty"`
}

// SearchInput filters the buyer product search.
type SearchInput struct {
	Query      string
	CategoryID uuid.UUID
	FairID     uuid.UUID
}

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID        uuid.UUID  `json:"id"`
	StallID   uuid.UUID  `json:"puesto_id"`
	Name      string     `json:"nombre"`
	Stock     int        `json:"stock"`
	Category  *string    `json:"categoria,omitempty"`
	FairName  string     `json:"feria,omitempty"`
	OwnerName string     `json:"vendedor,omitempty"`
	StallName *string    `json:"nombre_puesto,omitempty"`
	FairID    *uuid.UUID `json:"feria_id,omitempty"`
}

func fromModel(p *models.Product) ProductDTO {
	dto := ProductDTO{
		ID:      p.ID,
		StallID: p.StallID,
		Name:    p.Name,
		Stock:   p.Stock,
	}
	if p.Category != nil {
		dto.Category = &p.Category.Name
	}
	if p.Stall != nil {
		if p.Stall.Fair != nil {
			dto.FairName = p.Stall.Fair.Name
			fairID := p.Stall.Fair.ID
			dto.FairID = &fairID
		}
		if p.Stall.Owner != nil {
			dto.OwnerName = p.Stall.Owner.Name
			dto.StallName = p.Stall.Owner.StallName
		}
	}
	return dto
}
