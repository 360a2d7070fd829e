package stalls

import (
	"context"
	"errors"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes stall browsing plus the vendor's own-stall management. A
// vendor may hold stalls in any number of fairs; mutations are addressed by
// stall id and checked against the caller.
type Service interface {
	List(ctx context.Context) ([]StallDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*StallDetailDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]StallDetailDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateStallInput) (*StallDetailDTO, error)
	Update(ctx context.Context, userID uuid.UUID, stallID uuid.UUID, input UpdateStallInput) (*StallDetailDTO, error)
	Delete(ctx context.Context, userID uuid.UUID, stallID uuid.UUID) error
}

type fairFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Fair, error)
}

type service struct {
	repo  *Repository
	fairs fairFinder
}

// NewService wires the stalls service.
func NewService(repo *Repository, fairs fairFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stall repository required")
	}
	if fairs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "fair repository required")
	}
	return &service{repo: repo, fairs: fairs}, nil
}

func (s *service) List(ctx context.Context) ([]StallDTO, error) {
	stalls, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stalls")
	}
	dtos := make([]StallDTO, 0, len(stalls))
	for i := range stalls {
		dtos = append(dtos, fromModel(&stalls[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*StallDetailDTO, error) {
	stall, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El puesto no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stall")
	}
	return detailFromModel(stall), nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]StallDetailDTO, error) {
	stalls, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stalls")
	}
	dtos := make([]StallDetailDTO, 0, len(stalls))
	for i := range stalls {
		dtos = append(dtos, *detailFromModel(&stalls[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateStallInput) (*StallDetailDTO, error) {
	if _, err := s.fairs.FindByID(ctx, input.FairID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "La feria no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fair")
	}

	stall, err := s.repo.Create(ctx, &models.Stall{
		FairID:      input.FairID,
		UserID:      userID,
		StallNumber: input.StallNumber,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create stall")
	}
	return s.Get(ctx, stall.ID)
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, stallID uuid.UUID, input UpdateStallInput) (*StallDetailDTO, error) {
	if _, err := s.ownStall(ctx, userID, stallID); err != nil {
		return nil, err
	}

	if _, err := s.fairs.FindByID(ctx, input.FairID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "La feria no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fair")
	}

	if err := s.repo.Update(ctx, stallID, input.FairID, input.StallNumber); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update stall")
	}
	return s.Get(ctx, stallID)
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, stallID uuid.UUID) error {
	if _, err := s.ownStall(ctx, userID, stallID); err != nil {
		return err
	}

	count, err := s.repo.CountProducts(ctx, stallID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "No se puede eliminar un puesto con productos")
	}

	if err := s.repo.Delete(ctx, stallID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete stall")
	}
	return nil
}

// ownStall loads the stall and rejects callers who do not hold it.
func (s *service) ownStall(ctx context.Context, userID uuid.UUID, stallID uuid.UUID) (*models.Stall, error) {
	stall, err := s.repo.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El puesto no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stall")
	}
	if stall.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado")
	}
	return stall, nil
}
