package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/Gortyum/feriadigital/pkg/enums"
)

// UserDTO is the transport shape that omits the stored credential.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	RUT       string    `json:"rut"`
	Name      string    `json:"nombre"`
	StallName *string   `json:"nombre_puesto,omitempty"`
	Role      string    `json:"rol"`
	Phone     *string   `json:"telefono,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	RUT          string
	Name         string
	StallName    *string
	Role         enums.UserRole
	Phone        *string
	Email        *string
	PasswordHash string
}

// UpdateProfileDTO overwrites the mutable profile columns. Nil pointers clear
// the column.
type UpdateProfileDTO struct {
	Name      string
	StallName *string
	Phone     *string
	Email     *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		RUT:       u.RUT,
		Name:      u.Name,
		StallName: u.StallName,
		Role:      u.Role.String(),
		Phone:     u.Phone,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		RUT:          c.RUT,
		Name:         c.Name,
		StallName:    c.StallName,
		Role:         c.Role,
		Phone:        c.Phone,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
	}
}
