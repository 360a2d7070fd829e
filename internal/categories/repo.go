package categories

import (
	"context"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryDTO is the payload for one product category.
type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"nombre"`
	Type *string   `json:"tipo,omitempty"`
}

// Repository exposes category persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a categories repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a category.
func (r *Repository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories ordered by name.
func (r *Repository) List(ctx context.Context) ([]CategoryDTO, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, CategoryDTO{ID: c.ID, Name: c.Name, Type: c.Type})
	}
	return dtos, nil
}
