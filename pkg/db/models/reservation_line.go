package models

import "github.com/google/uuid"

// ReservationLine details one product within a reservation. The composite key
// keeps a product from appearing twice on the same reservation; lines cascade
// with either parent.
type ReservationLine struct {
	ReservationID uuid.UUID `gorm:"column:reservation_id;type:uuid;primaryKey"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	Quantity      int       `gorm:"column:quantity;not null"`
	Unit          *string   `gorm:"column:unit"`
}
