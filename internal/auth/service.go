package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Gortyum/feriadigital/internal/users"
	"github.com/Gortyum/feriadigital/pkg/config"
	"github.com/Gortyum/feriadigital/pkg/enums"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/Gortyum/feriadigital/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "Credenciales incorrectas"

// Service exposes account lifecycle operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*users.UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error)
}

type service struct {
	conn        *gorm.DB
	passwordCfg config.PasswordConfig
}

// NewService builds the auth service on the shared GORM connection.
func NewService(conn *gorm.DB, passwordCfg config.PasswordConfig) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database connection required")
	}
	return &service{conn: conn, passwordCfg: passwordCfg}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*users.UserDTO, error) {
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El rol no es válido")
	}
	if role == enums.UserRoleVendor && trimmedOrNil(req.StallName) == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Debe indicar el nombre del puesto")
	}

	rut := strings.TrimSpace(req.RUT)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Debe indicar un correo")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	txErr := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		if _, err := repo.FindByRUT(ctx, rut); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "El RUT ya está registrado")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check rut")
		}

		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "El correo ya está registrado")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			RUT:          rut,
			Name:         strings.TrimSpace(req.Name),
			StallName:    trimmedOrNil(req.StallName),
			Role:         role,
			Phone:        trimmedOrNil(req.Phone),
			Email:        &email,
			PasswordHash: hash,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

// Login resolves the account by email. Unknown emails and wrong passwords
// share one message so the response never confirms an address exists.
func (s *service) Login(ctx context.Context, req LoginRequest) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	repo := users.NewRepository(s.conn)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return users.FromModel(user), nil
}

func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	repo := users.NewRepository(s.conn)
	user, err := repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Recurso no encontrado")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeValidation, "La contraseña actual no es correcta")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error) {
	email := normalizeEmail(req.Email)

	var updated *users.UserDTO
	txErr := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		user, err := repo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Recurso no encontrado")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
		}

		if email != nil {
			if other, err := repo.FindByEmail(ctx, *email); err == nil && other.ID != userID {
				return pkgerrors.New(pkgerrors.CodeConflict, "El correo ya está registrado")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
			}
		}

		if err := repo.UpdateProfile(ctx, userID, users.UpdateProfileDTO{
			Name:      strings.TrimSpace(req.Name),
			StallName: trimmedOrNil(req.StallName),
			Phone:     trimmedOrNil(req.Phone),
			Email:     email,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
		}

		user, err = repo.FindByID(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload user")
		}
		updated = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func normalizeEmail(email *string) *string {
	trimmed := trimmedOrNil(email)
	if trimmed == nil {
		return nil
	}
	lowered := strings.ToLower(*trimmed)
	return &lowered
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
