package models

import (
	"time"

	"github.com/Gortyum/feriadigital/pkg/enums"
	"github.com/google/uuid"
)

// User represents a registered buyer or vendor. The role is fixed at creation.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	RUT          string         `gorm:"column:rut;not null;uniqueIndex"`
	Name         string         `gorm:"column:name;not null"`
	StallName    *string        `gorm:"column:stall_name"`
	Role         enums.UserRole `gorm:"column:role;not null"`
	Phone        *string        `gorm:"column:phone"`
	Email        *string        `gorm:"column:email;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Stalls       []Stall        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Reservations []Reservation  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
