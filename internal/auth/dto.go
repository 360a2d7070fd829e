package auth

// RegisterRequest contains the payload for creating an account. The password
// comes twice; mismatches never reach the service.
type RegisterRequest struct {
	RUT             string  `json:"rut" validate:"required,rut"`
	Name            string  `json:"nombre" validate:"required"`
	StallName       *string `json:"nombre_puesto,omitempty"`
	Role            string  `json:"rol" validate:"required,oneof=cliente vendedor"`
	Phone           *string `json:"telefono,omitempty"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword string  `json:"confirmar" validate:"required,eqfield=Password"`
}

// LoginRequest identifies the user by email.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest rotates the stored credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" validate:"required"`
	NewPassword     string `json:"password_nueva" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmar" validate:"required,eqfield=NewPassword"`
}

// UpdateProfileRequest overwrites the editable profile fields.
type UpdateProfileRequest struct {
	Name      string  `json:"nombre" validate:"required"`
	StallName *string `json:"nombre_puesto,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}
