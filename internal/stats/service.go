package stats

import (
	"context"
	"time"

	"github.com/Gortyum/feriadigital/pkg/db/models"
	pkgerrors "github.com/Gortyum/feriadigital/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorStatsDTO summarizes a vendor's stall activity.
type VendorStatsDTO struct {
	TotalProducts      int64            `json:"total_productos"`
	TotalStock         int64            `json:"stock_total"`
	TotalReservations  int64            `json:"total_reservas"`
	ReservedQuantity   int64            `json:"cantidad_reservada"`
	RecentReservations int64            `json:"reservas_ultima_semana"`
	TopProducts        []ProductStatDTO `json:"productos_mas_reservados"`
}

// ProductStatDTO ranks a product by total quantity reserved.
type ProductStatDTO struct {
	ProductID uuid.UUID `json:"producto_id"`
	Name      string    `json:"nombre"`
	Quantity  int64     `json:"cantidad"`
}

// Service computes dashboard statistics for vendors.
type Service interface {
	ForVendor(ctx context.Context, vendorID uuid.UUID) (*VendorStatsDTO, error)
}

type stallLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Stall, error)
}

type service struct {
	conn   *gorm.DB
	stalls stallLister
}

// NewService wires the stats service.
func NewService(conn *gorm.DB, stalls stallLister) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database connection required")
	}
	if stalls == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stall repository required")
	}
	return &service{conn: conn, stalls: stalls}, nil
}

const topProductLimit = 5

func (s *service) ForVendor(ctx context.Context, vendorID uuid.UUID) (*VendorStatsDTO, error) {
	stalls, err := s.stalls.ListByOwner(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list stalls")
	}
	if len(stalls) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Aún no ha registrado un puesto")
	}
	stallIDs := make([]uuid.UUID, 0, len(stalls))
	for i := range stalls {
		stallIDs = append(stallIDs, stalls[i].ID)
	}

	conn := s.conn.WithContext(ctx)
	stats := &VendorStatsDTO{TopProducts: []ProductStatDTO{}}

	if err := conn.Model(&models.Product{}).
		Where("stall_id IN ?", stallIDs).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	if err := conn.Model(&models.Product{}).
		Where("stall_id IN ?", stallIDs).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&stats.TotalStock).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum stock")
	}

	reservationScope := func() *gorm.DB {
		return conn.Model(&models.Reservation{}).
			Joins("JOIN products ON products.id = reservations.product_id").
			Where("products.stall_id IN ?", stallIDs)
	}

	if err := reservationScope().Count(&stats.TotalReservations).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count reservations")
	}

	if err := reservationScope().
		Select("COALESCE(SUM(reservations.quantity), 0)").
		Scan(&stats.ReservedQuantity).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum reserved quantity")
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := reservationScope().
		Where("reservations.reserved_on >= ?", weekAgo).
		Count(&stats.RecentReservations).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recent reservations")
	}

	if err := reservationScope().
		Select("products.id AS product_id, products.name AS name, SUM(reservations.quantity) AS quantity").
		Group("products.id, products.name").
		Order("quantity DESC").
		Limit(topProductLimit).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank products")
	}

	return stats, nil
}
