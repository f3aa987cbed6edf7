package participation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketry/backend/internal/domain/order"
)

// CreateOrderRequest carries the data for creating a product order
type CreateOrderRequest struct {
	Kind            string `json:"kind" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	DeliverableType string `json:"deliverable_type" binding:"required"`
}

// AddInfluencerEntry names one influencer to add, with optional terms.
// When no amount is given the influencer's published desired amount for
// the order's deliverable type is used.
type AddInfluencerEntry struct {
	InfluencerID uuid.UUID        `json:"influencer_id" binding:"required"`
	Amount       *decimal.Decimal `json:"amount"`
	Currency     string           `json:"currency"`
}

// AddInfluencersRequest carries the influencers to add to an order
type AddInfluencersRequest struct {
	Influencers []AddInfluencerEntry `json:"influencers" binding:"required,min=1,dive"`
}

// InfluencerIDsRequest carries a batch of influencer ids for an order
// operation
type InfluencerIDsRequest struct {
	InfluencerIDs []uuid.UUID `json:"influencer_ids" binding:"required,min=1"`
}

// SubmitDataRequest carries an influencer's work for an order
type SubmitDataRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// RemoveInfluencersResponse reports how many influencers a removal
// affected across both removal buckets
type RemoveInfluencersResponse struct {
	RemovedCount int64 `json:"removed_count"`
}

// ParticipantResponse is the API representation of a participant
type ParticipantResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"order_id"`
	InfluencerID uuid.UUID       `json:"influencer_id"`
	Status       string          `json:"status"`
	AgreedAmount decimal.Decimal `json:"agreed_amount"`
	Currency     string          `json:"currency"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// OrderResponse is the API representation of a product order
type OrderResponse struct {
	ID              uuid.UUID  `json:"id"`
	ClientID        uuid.UUID  `json:"client_id"`
	Kind            string     `json:"kind"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	DeliverableType string     `json:"deliverable_type"`
	Status          string     `json:"status"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// OrderDetailResponse is an order together with its participant roster
type OrderDetailResponse struct {
	OrderResponse
	Participants []ParticipantResponse `json:"participants"`
}

// SubmissionResponse is the API representation of a submission
type SubmissionResponse struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	InfluencerID uuid.UUID `json:"influencer_id"`
	Payload      string    `json:"payload"`
	Revision     int       `json:"revision"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToOrderResponse converts a product order to its API representation
func ToOrderResponse(o *order.ProductOrder) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		ClientID:        o.ClientID,
		Kind:            string(o.Kind),
		Title:           o.Title,
		Description:     o.Description,
		DeliverableType: string(o.DeliverableType),
		Status:          o.Status.String(),
		StartedAt:       o.StartedAt,
		FinishedAt:      o.FinishedAt,
		ArchivedAt:      o.ArchivedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToParticipantResponse converts a participant to its API representation.
// The status label depends on the order kind.
func ToParticipantResponse(p *order.Participant, kind order.Kind) ParticipantResponse {
	return ParticipantResponse{
		ID:           p.ID,
		OrderID:      p.OrderID,
		InfluencerID: p.InfluencerID,
		Status:       p.Status.Label(kind),
		AgreedAmount: p.AgreedAmount,
		Currency:     p.Currency.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToSubmissionResponse converts a submission to its API representation
func ToSubmissionResponse(s *order.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:           s.ID,
		OrderID:      s.OrderID,
		InfluencerID: s.InfluencerID,
		Payload:      s.Payload,
		Revision:     s.Revision,
		UpdatedAt:    s.UpdatedAt,
	}
}
