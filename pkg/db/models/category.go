package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Deleting one detaches its products instead of
// removing them.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Type      *string   `gorm:"column:type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
