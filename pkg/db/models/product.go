package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a stall listing with a non-negative stock counter. Stock moves
// only through reservation create/cancel.
type Product struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	StallID    uuid.UUID  `gorm:"column:stall_id;type:uuid;not null"`
	CategoryID *uuid.UUID `gorm:"column:category_id;type:uuid"`
	Name       string     `gorm:"column:name;not null"`
	Stock      int        `gorm:"column:stock;not null;default:0;check:stock >= 0"`
	Stall      *Stall     `gorm:"foreignKey:StallID"`
	Category   *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
