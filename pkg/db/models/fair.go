package models

import (
	"time"

	"github.com/google/uuid"
)

// Fair is a market event hosting vendor stalls. City feeds the weather lookup.
type Fair struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Location  *string   `gorm:"column:location"`
	City      *string   `gorm:"column:city"`
	Crowding  *int      `gorm:"column:crowding"`
	Stalls    []Stall   `gorm:"foreignKey:FairID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
