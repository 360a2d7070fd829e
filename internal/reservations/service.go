package reservations

import (
	"context"
	"errors"
	"time"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the reservation lifecycle for buyers and vendors.
type Service interface {
	Create(ctx context.Context, buyerID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error)
	Cancel(ctx context.Context, buyerID uuid.UUID, reservationID uuid.UUID) error
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]ReservationDTO, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]ReservationDTO, error)
	Complete(ctx context.Context, vendorID uuid.UUID, reservationID uuid.UUID) error
}

type stallLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Stall, error)
}

type service struct {
	conn   *gorm.DB
	repo   *Repository
	stalls stallLister
}

// NewService wires the reservations service.
func NewService(conn *gorm.DB, stalls stallLister) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database connection required")
	}
	if stalls == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stall repository required")
	}
	return &service{conn: conn, repo: NewRepository(conn), stalls: stalls}, nil
}

// Create places a hold on product stock. The conditional decrement keeps two
// concurrent buyers from overselling the same product.
func (s *service) Create(ctx context.Context, buyerID uuid.UUID, input CreateReservationInput) (*ReservationDTO, error) {
	var reservationID uuid.UUID
	txErr := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		taken, err := repo.TakeStock(ctx, input.ProductID, input.Quantity)
		if err != nil {
			return err
		}
		if !taken {
			var product models.Product
			if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "El producto no existe")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}
			return pkgerrors.New(pkgerrors.CodeConflict, "Stock insuficiente")
		}

		productID := input.ProductID
		reservation, err := repo.Create(ctx, &models.Reservation{
			UserID:     buyerID,
			ProductID:  &productID,
			Quantity:   input.Quantity,
			ReservedOn: time.Now().UTC(),
			Lines: []models.ReservationLine{{
				ProductID: productID,
				Quantity:  input.Quantity,
			}},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create reservation")
		}
		reservationID = reservation.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload reservation")
	}
	dto := fromModel(reservation)
	return &dto, nil
}

// Cancel releases the buyer's hold and returns the stock.
func (s *service) Cancel(ctx context.Context, buyerID uuid.UUID, reservationID uuid.UUID) error {
	return s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		reservation, err := repo.FindByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "La reserva no existe")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reservation")
		}
		if reservation.UserID != buyerID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado")
		}

		if reservation.ProductID != nil {
			if err := repo.ReleaseStock(ctx, *reservation.ProductID, reservation.Quantity); err != nil {
				return err
			}
		}
		if err := repo.Delete(ctx, reservationID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete reservation")
		}
		return nil
	})
}

func (s *service) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]ReservationDTO, error) {
	reservations, err := s.repo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reservations")
	}
	return toDTOs(reservations), nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID uuid.UUID) ([]ReservationDTO, error) {
	stalls, err := s.stalls.ListByOwner(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stalls")
	}
	if len(stalls) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Aún no ha registrado un puesto")
	}
	reservations, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reservations")
	}
	return toDTOs(reservations), nil
}

// Complete removes a processed reservation from the vendor's queue. The stock
// stays taken: the goods were handed over.
func (s *service) Complete(ctx context.Context, vendorID uuid.UUID, reservationID uuid.UUID) error {
	reservation, err := s.repo.FindByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "La reserva no existe")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load reservation")
	}
	if reservation.Product == nil || reservation.Product.Stall == nil || reservation.Product.Stall.UserID != vendorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Acceso denegado")
	}

	if err := s.repo.Delete(ctx, reservationID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete reservation")
	}
	return nil
}

func toDTOs(reservations []models.Reservation) []ReservationDTO {
	dtos := make([]ReservationDTO, 0, len(reservations))
	for i := range reservations {
		dtos = append(dtos, fromModel(&reservations[i]))
	}
	return dtos
}
