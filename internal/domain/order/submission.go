package order

import (
	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/shared"
)

// Submission holds the work an influencer handed in for an order. One
// row per (order, influencer) pair; resubmissions amend the row in place
// and bump the revision.
type Submission struct {
	shared.BaseEntity
	OrderID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_order_influencer;index"`
	InfluencerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_submission_order_influencer"`
	Payload      string    `gorm:"type:text;not null"`
	Revision     int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Submission) TableName() string {
	return "submissions"
}

// NewSubmission creates the first revision of a submission
func NewSubmission(orderID, influencerID uuid.UUID, payload string) (*Submission, error) {
	if payload == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Submission payload is required")
	}
	return &Submission{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      orderID,
		InfluencerID: influencerID,
		Payload:      payload,
		Revision:     1,
	}, nil
}

// Amend replaces the payload and bumps the revision
func (s *Submission) Amend(payload string) error {
	if payload == "" {
		return shared.NewDomainError("INVALID_INPUT", "Submission payload is required")
	}
	s.Payload = payload
	s.Revision++
	return nil
}
