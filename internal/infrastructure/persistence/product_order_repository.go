package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// GormProductOrderRepository implements ProductOrderRepository using GORM
type GormProductOrderRepository struct {
	db *gorm.DB
}

// NewGormProductOrderRepository creates a new GormProductOrderRepository
func NewGormProductOrderRepository(db *gorm.DB) *GormProductOrderRepository {
	return &GormProductOrderRepository{db: db}
}

// Create inserts a new product order
func (r *GormProductOrderRepository) Create(ctx context.Context, o *order.ProductOrder) error {
	if err := dbFrom(ctx, r.db).Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Update saves changes to a product order with optimistic locking on the
// aggregate version
func (r *GormProductOrderRepository) Update(ctx context.Context, o *order.ProductOrder) error {
	currentVersion := o.GetVersion()
	o.IncrementVersion()

	result := dbFrom(ctx, r.db).Model(o).
		Where("id = ? AND version = ?", o.ID, currentVersion).
		Select("*").
		Updates(o)
	if result.Error != nil {
		o.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		o.Version = currentVersion
		return shared.NewDomainError("CONCURRENCY_CONFLICT",
			"Order was modified by another operation, please retry")
	}
	return nil
}

// FindByID finds a product order by its ID
func (r *GormProductOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.ProductOrder, error) {
	var o order.ProductOrder
	if err := dbFrom(ctx, r.db).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds product orders with filtering and pagination
func (r *GormProductOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*order.ProductOrder], error) {
	db := dbFrom(ctx, r.db)

	var total int64
	countQuery := applyFilterWithoutPagination(db.Model(&order.ProductOrder{}), shared.Filter{Filters: filter.Filters})
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*order.ProductOrder]{}, err
	}

	var orders []*order.ProductOrder
	query := applyFilter(db.Model(&order.ProductOrder{}), filter)
	if err := query.Find(&orders).Error; err != nil {
		return shared.Paginated[*order.ProductOrder]{}, err
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Delete removes a product order
func (r *GormProductOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Delete(&order.ProductOrder{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
