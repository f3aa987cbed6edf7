package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/shared"
)

// ProductOrderRepository defines the persistence contract for product orders
type ProductOrderRepository interface {
	Create(ctx context.Context, o *ProductOrder) error
	Update(ctx context.Context, o *ProductOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProductOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[*ProductOrder], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParticipantRepository defines the persistence contract for order
// participants
type ParticipantRepository interface {
	// Create inserts a new participant. A concurrent insert for the same
	// (order, influencer) pair surfaces as shared.ErrConflict.
	Create(ctx context.Context, p *Participant) error
	Update(ctx context.Context, p *Participant) error
	FindByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Participant, error)
	FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*Participant, error)
	FindByOrderAndInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) ([]*Participant, error)
	FindByInfluencer(ctx context.Context, influencerID uuid.UUID, filter shared.Filter) (shared.Paginated[*Participant], error)

	// UpdateStatus moves the named influencers on one order from one
	// status to another and returns the number of rows changed
	UpdateStatus(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID, from, to ParticipantStatus) (int64, error)

	// UpdateStatusForOrder moves every participant of the order currently
	// in the from status to the to status and returns the number of rows
	// changed
	UpdateStatusForOrder(ctx context.Context, orderID uuid.UUID, from, to ParticipantStatus) (int64, error)
}

// SubmissionRepository defines the persistence contract for submissions
type SubmissionRepository interface {
	Create(ctx context.Context, s *Submission) error
	Update(ctx context.Context, s *Submission) error
	FindByOrderAndInfluencer(ctx context.Context, orderID, influencerID uuid.UUID) (*Submission, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Submission, error)
}
