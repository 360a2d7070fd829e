package fairs

import (
	"github.com/google/uuid"

	"github.com/Gortyum/feriadigital/pkg/db/models"
)

// FairDTO is the browse payload for one fair.
type FairDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"nombre"`
	Location   *string   `json:"ubicacion,omitempty"`
	City       *string   `json:"ciudad,omitempty"`
	Crowding   *int      `json:"afluencia,omitempty"`
	StallCount int       `json:"total_puestos"`
}

// StallSummaryDTO lists a stall inside a fair detail.
type StallSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	StallNumber *string   `json:"numero_puesto,omitempty"`
	OwnerName   string    `json:"vendedor"`
	StallName   *string   `json:"nombre_puesto,omitempty"`
}

// FairDetailDTO expands a fair with its stalls.
type FairDetailDTO struct {
	FairDTO
	Stalls []StallSummaryDTO `json:"puestos"`
}

func fromModel(f *models.Fair) FairDTO {
	return FairDTO{
		ID:         f.ID,
		Name:       f.Name,
		Location:   f.Location,
		City:       f.City,
		Crowding:   f.Crowding,
		StallCount: len(f.Stalls),
	}
}

func detailFromModel(f *models.Fair) *FairDetailDTO {
	detail := &FairDetailDTO{
		FairDTO: fromModel(f),
		Stalls:  make([]StallSummaryDTO, 0, len(f.Stalls)),
	}
	for _, stall := range f.Stalls {
		summary := StallSummaryDTO{
			ID:          stall.ID,
			StallNumber: stall.StallNumber,
		}
		if stall.Owner != nil {
			summary.OwnerName = stall.Owner.Name
			summary.StallName = stall.Owner.StallName
		}
		detail.Stalls = append(detail.Stalls, summary)
	}
	return detail
}
