package fairs

import (
	"context"
	"errors"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes fair persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a fairs repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a fair.
func (r *Repository) Create(ctx context.Context, fair *models.Fair) (*models.Fair, error) {
	fair.ID = uuid.New()
	if err := r.db.WithContext(ctx).Create(fair).Error; err != nil {
		return nil, err
	}
	return fair, nil
}

// List returns all fairs ordered by name, with stalls preloaded for counting.
func (r *Repository) List(ctx context.Context) ([]models.Fair, error) {
	var fairs []models.Fair
	if err := r.db.WithContext(ctx).
		Preload("Stalls").
		Order("name ASC").
		Find(&fairs).Error; err != nil {
		return nil, err
	}
	return fairs, nil
}

// FindByID loads a fair with its stalls and their owners.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Fair, error) {
	var fair models.Fair
	if err := r.db.WithContext(ctx).
		Preload("Stalls").
		Preload("Stalls.Owner").
		First(&fair, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fair, nil
}

// Service answers fair browse reads.
type Service struct {
	repo *Repository
}

// NewService wires the fairs service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns every fair as a browse row.
func (s *Service) List(ctx context.Context) ([]FairDTO, error) {
	fairs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list fairs")
	}
	dtos := make([]FairDTO, 0, len(fairs))
	for i := range fairs {
		dtos = append(dtos, fromModel(&fairs[i]))
	}
	return dtos, nil
}

// Get returns one fair with its stalls.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*FairDetailDTO, error) {
	fair, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "La feria no existe")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load fair")
	}
	return detailFromModel(fair), nil
}
