package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketry/backend/internal/domain/identity"
	"github.com/marketry/backend/internal/domain/shared"
)

// GormInfluencerRepository implements InfluencerRepository using GORM
type GormInfluencerRepository struct {
	db *gorm.DB
}

// NewGormInfluencerRepository creates a new GormInfluencerRepository
func NewGormInfluencerRepository(db *gorm.DB) *GormInfluencerRepository {
	return &GormInfluencerRepository{db: db}
}

// Create inserts a new influencer with their desired amounts
func (r *GormInfluencerRepository) Create(ctx context.Context, i *identity.Influencer) error {
	if err := dbFrom(ctx, r.db).Create(i).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Update saves changes to an influencer and their desired amounts
func (r *GormInfluencerRepository) Update(ctx context.Context, i *identity.Influencer) error {
	return dbFrom(ctx, r.db).Session(&gorm.Session{FullSaveAssociations: true}).Save(i).Error
}

// FindByID finds an influencer by ID
func (r *GormInfluencerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Influencer, error) {
	var i identity.Influencer
	if err := dbFrom(ctx, r.db).
		Preload("DesiredAmounts").
		First(&i, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FindByIDs finds influencers by a set of IDs. Unknown IDs are simply
// absent from the result.
func (r *GormInfluencerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Influencer, error) {
	var influencers []*identity.Influencer
	if err := dbFrom(ctx, r.db).
		Preload("DesiredAmounts").
		Where("id IN ?", ids).
		Find(&influencers).Error; err != nil {
		return nil, err
	}
	return influencers, nil
}

// FindByHandle finds an influencer by their unique handle
func (r *GormInfluencerRepository) FindByHandle(ctx context.Context, handle string) (*identity.Influencer, error) {
	var i identity.Influencer
	if err := dbFrom(ctx, r.db).
		Preload("DesiredAmounts").
		Where("handle = ?", handle).
		First(&i).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FindAll finds influencers with filtering and pagination
func (r *GormInfluencerRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.Influencer], error) {
	db := dbFrom(ctx, r.db)

	var total int64
	countQuery := applyFilterWithoutPagination(db.Model(&identity.Influencer{}), shared.Filter{Filters: filter.Filters})
	if err := countQuery.Count(&total).Error; err != nil {
		return shared.Paginated[*identity.Influencer]{}, err
	}

	var influencers []*identity.Influencer
	query := applyFilter(db.Model(&identity.Influencer{}).Preload("DesiredAmounts"), filter)
	if err := query.Find(&influencers).Error; err != nil {
		return shared.Paginated[*identity.Influencer]{}, err
	}
	return shared.NewPaginated(influencers, total, filter.Page, filter.PageSize), nil
}
