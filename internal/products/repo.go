package products

import (
	"context"
	"strings"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product with its stall, fair, owner, and category.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Stall").
		Preload("Stall.Fair").
		Preload("Stall.Owner").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByOwner returns every product across the vendor's stalls ordered by
// name.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Stall").
		Preload("Stall.Fair").
		Joins("JOIN stalls ON stalls.id = products.stall_id").
		Where("stalls.user_id = ?", userID).
		Order("products.name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CategoryExists reports whether the category id is registered.
func (r *Repository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search filters products by name substring, category, and fair.
func (r *Repository) Search(ctx context.Context, input SearchInput) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Category").
		Preload("Stall").
		Preload("Stall.Fair").
		Preload("Stall.Owner")

	if trimmed := strings.TrimSpace(input.Query); trimmed != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(trimmed)+"%")
	}
	if input.CategoryID != uuid.Nil {
		query = query.Where("products.category_id = ?", input.CategoryID)
	}
	if input.FairID != uuid.Nil {
		query = query.
			Joins("JOIN stalls ON stalls.id = products.stall_id").
			Where("stalls.fair_id = ?", input.FairID)
	}

	var products []models.Product
	if err := query.Order("products.name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update overwrites the product's editable columns.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        input.Name,
			"stock":       input.Stock,
			"category_id": input.CategoryID,
		}).Error
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// CountReservations reports how many reservations reference the product.
func (r *Repository) CountReservations(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
