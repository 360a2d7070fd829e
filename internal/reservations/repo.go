package reservations

import (
	"context"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes reservation persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reservations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a reservation.
func (r *Repository) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	reservation.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

// FindByID loads a reservation with its buyer and product chain.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Product").
		Preload("Product.Stall").
		Preload("Product.Stall.Fair").
		Preload("Product.Stall.Owner").
		First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ListByBuyer returns the buyer's reservations, newest first.
func (r *Repository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Stall").
		Preload("Product.Stall.Fair").
		Preload("Product.Stall.Owner").
		Where("user_id = ?", buyerID).
		Order("reserved_on DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByVendor returns the reservations against products in any of the
// vendor's stalls, newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Buyer").
		Preload("Product").
		Joins("JOIN products ON products.id = reservations.product_id").
		Joins("JOIN stalls ON stalls.id = products.stall_id").
		Where("stalls.user_id = ?", vendorID).
		Order("reservations.reserved_on DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// Delete removes the reservation and its lines. Stock is untouched; callers
// that need the hold released go through ReleaseStock first.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&models.ReservationLine{}, "reservation_id = ?", id).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Reservation{}, "id = ?", id).Error
}

// TakeStock decrements product stock, guarding against oversell. Returns false
// when the product had less stock than requested.
func (r *Repository) TakeStock(ctx context.Context, productID uuid.UUID, qty int) (bool, error) {
	if qty <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "La cantidad debe ser mayor que cero")
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "take stock")
	}
	return res.RowsAffected > 0, nil
}

// ReleaseStock returns a cancelled hold to the product.
func (r *Repository) ReleaseStock(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release stock")
	}
	return nil
}
