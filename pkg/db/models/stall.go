package models

import (
	"time"

	"github.com/google/uuid"
)

// Stall is a vendor's sales location within a fair. Deleting the fair or the
// owning user removes the stall; products hang off it.
type Stall struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FairID      uuid.UUID `gorm:"column:fair_id;type:uuid;not null"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	StallNumber *string   `gorm:"column:stall_number"`
	Fair        *Fair     `gorm:"foreignKey:FairID"`
	Owner       *User     `gorm:"foreignKey:UserID"`
	Products    []Product `gorm:"foreignKey:StallID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
