package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// GormParticipantRepository implements ParticipantRepository using GORM
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewGormParticipantRepository creates a new GormParticipantRepository
func NewGormParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// Create inserts a new participant. The unique index on
// (order_id, influencer_id) turns a concurrent duplicate insert into a
// conflict error.
func (r *GormParticipantRepository) Create(ctx context.Context, p *order.Participant) error {
	if err := dbFrom(ctx, r.db).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Update saves changes to a participant
func (r *GormParticipantRepository) Update(ctx context.Context, p *order.Participant) error {
	result := dbFrom(ctx, r.db).Model(p).Select("*").Updates(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a participant by its ID
func (r *GormParticipantRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Participant, error) {
	var p order.Participant
	if err := dbFrom(ctx, r.db).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOrder finds all participants of an order
func (r *GormParticipantRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.Participant, error) {
	var participants []*order.Participant
	if err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByOrderAndInfluencer finds the participant row for one influencer
// on one order
func (r *GormParticipantRepository) FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*order.Participant, error) {
	var p order.Participant
	if err := dbFrom(ctx, r.db).
		Where("order_id = ? AND influencer_id = ?", orderID, influencerID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByOrderAndInfluencers finds the participant rows for a set of
// influencers on one order. Influencers without a row are simply absent
// from the result.
func (r *GormParticipantRepository) FindByOrderAndInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) ([]*order.Participant, error) {
	var participants []*order.Participant
	if err := dbFrom(ctx, r.db).
		Where("order_id = ? AND influencer_id IN ?", orderID, influencerIDs).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByInfluencer finds an influencer's participations across orders
func (r *GormParticipantRepository) FindByInfluencer(ctx context.Context, influencerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Participant], error) {
	db := dbFrom(ctx, r.db)

	var total int64
	if err := db.Model(&order.Participant{}).
		Where("influencer_id = ?", influencerID).
		Count(&total).Error; err != nil {
		return shared.Paginated[*order.Participant]{}, err
	}

	var participants []*order.Participant
	query := applyFilter(db.Model(&order.Participant{}).Where("influencer_id = ?", influencerID), filter)
	if err := query.Find(&participants).Error; err != nil {
		return shared.Paginated[*order.Participant]{}, err
	}
	return shared.NewPaginated(participants, total, filter.Page, filter.PageSize), nil
}

// UpdateStatus moves the named influencers on one order from one status
// to another and returns the number of rows changed
func (r *GormParticipantRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID, from, to order.ParticipantStatus) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&order.Participant{}).
		Where("order_id = ? AND influencer_id IN ? AND status = ?", orderID, influencerIDs, from).
		Update("status", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateStatusForOrder moves every participant of the order in the from
// status to the to status and returns the number of rows changed
func (r *GormParticipantRepository) UpdateStatusForOrder(ctx context.Context, orderID uuid.UUID, from, to order.ParticipantStatus) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&order.Participant{}).
		Where("order_id = ? AND status = ?", orderID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
