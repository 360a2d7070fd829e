package products

import (
	"context"
	"errors"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes buyer search plus the vendor's own-catalog management.
type Service interface {
	Search(ctx context.Context, input SearchInput) ([]ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, userID uuid.UUID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
}

type stallFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Stall, error)
}

type service struct {
	repo   *Repository
	stalls stallFinder
}

// NewService wires the products service.
func NewService(repo *Repository, stalls stallFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product repository required")
	}
	if stalls == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stall repository required")
	}
	return &service{repo: repo, stalls: stalls}, nil
}

func (s *service) Search(ctx context.Context, input SearchInput) ([]ProductDTO, error) {
	products, err := s.repo.Search(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, fromModel(&products[i]))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El producto no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	dto := fromModel(product)
	return &dto, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]ProductDTO, error) {
	products, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, fromModel(&products[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	stall, err := s.stalls.FindByID(ctx, input.StallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El puesto no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load stall")
	}
	if stall.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado")
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.repo.Create(ctx, &models.Product{
		StallID:    stall.ID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Stock:      input.Stock,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return s.Get(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if _, err := s.ownProduct(ctx, userID, productID); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, productID, input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	return s.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	if _, err := s.ownProduct(ctx, userID, productID); err != nil {
		return err
	}

	count, err := s.repo.CountReservations(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count reservations")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "No se puede eliminar un producto con reservas")
	}

	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

// checkCategory rejects references to categories that are not registered.
func (s *service) checkCategory(ctx context.Context, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	exists, err := s.repo.CategoryExists(ctx, *categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check category")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "La categoría no existe")
	}
	return nil
}

func (s *service) ownProduct(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "El producto no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if product.Stall == nil || product.Stall.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado")
	}
	return product, nil
}
