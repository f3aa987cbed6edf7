package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// GormSubmissionRepository implements SubmissionRepository using GORM
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewGormSubmissionRepository creates a new GormSubmissionRepository
func NewGormSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// Create inserts a new submission
func (r *GormSubmissionRepository) Create(ctx context.Context, s *order.Submission) error {
	if err := dbFrom(ctx, r.db).Create(s).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Update saves changes to a submission
func (r *GormSubmissionRepository) Update(ctx context.Context, s *order.Submission) error {
	result := dbFrom(ctx, r.db).Model(s).Select("*").Updates(s)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByOrderAndInfluencer finds an influencer's submission for an order
func (r *GormSubmissionRepository) FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*order.Submission, error) {
	var s order.Submission
	if err := dbFrom(ctx, r.db).
		Where("order_id = ? AND influencer_id = ?", orderID, influencerID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByOrder finds all submissions for an order
func (r *GormSubmissionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.Submission, error) {
	var submissions []*order.Submission
	if err := dbFrom(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("updated_at desc").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
