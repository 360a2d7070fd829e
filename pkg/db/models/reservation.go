package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a buyer's hold on product stock. ReservedOn is set once at
// creation and never updated.
type Reservation struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	ProductID  *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	Quantity   int               `gorm:"column:quantity;not null;check:quantity > 0"`
	ReservedOn time.Time         `gorm:"column:reserved_on;not null"`
	Buyer      *User             `gorm:"foreignKey:UserID"`
	Product    *Product          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Lines      []ReservationLine `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
