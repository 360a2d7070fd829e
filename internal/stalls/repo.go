package stalls

import (
	"context"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes stall persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a stalls repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a stall.
func (r *Repository) Create(ctx context.Context, stall *models.Stall) (*models.Stall, error) {
	stall.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(stall).Error; err != nil {
		return nil, err
	}
	return stall, nil
}

// List returns all stalls with fair and owner preloaded.
func (r *Repository) List(ctx context.Context) ([]models.Stall, error) {
	var stalls []models.Stall
	if err := r.db.WithContext(ctx).
		Preload("Fair").
		Preload("Owner").
		Preload("Products").
		Order("created_at ASC").
		Find(&stalls).Error; err != nil {
		return nil, err
	}
	return stalls, nil
}

// FindByID loads a stall with fair, owner, and products.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Stall, error) {
	var stall models.Stall
	if err := r.db.WithContext(ctx).
		Preload("Fair").
		Preload("Owner").
		Preload("Products").
		Preload("Products.Category").
		First(&stall, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stall, nil
}

// ListByOwner returns every stall the vendor holds, oldest first.
func (r *Repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Stall, error) {
	var stalls []models.Stall
	if err := r.db.WithContext(ctx).
		Preload("Fair").
		Preload("Owner").
		Preload("Products").
		Preload("Products.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&stalls).Error; err != nil {
		return nil, err
	}
	return stalls, nil
}

// Update overwrites the fair assignment and stall number.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fairID uuid.UUID, stallNumber *string) error {
	return r.db.WithContext(ctx).
		Model(&models.Stall{}).
		Where("id = ?", id).
		Updates(map[string]any{"fair_id": fairID, "stall_number": stallNumber}).Error
}

// Delete removes the stall row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Stall{}, "id = ?", id).Error
}

// CountProducts reports how many products hang off the stall.
func (r *Repository) CountProducts(ctx context.Context, stallID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("stall_id = ?", stallID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
