package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketry/backend/internal/domain/identity"
)

// CreateInfluencerRequest carries the data for registering an influencer
type CreateInfluencerRequest struct {
	Handle      string `json:"handle" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// UpdateInfluencerRequest carries a profile update
type UpdateInfluencerRequest struct {
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Active      *bool   `json:"active"`
}

// SetDesiredAmountRequest publishes an asking price for one deliverable
// type
type SetDesiredAmountRequest struct {
	DeliverableType string          `json:"deliverable_type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Currency        string          `json:"currency"`
}

// DesiredAmountResponse is the API representation of an asking price
type DesiredAmountResponse struct {
	DeliverableType string          `json:"deliverable_type"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

// InfluencerResponse is the API representation of an influencer
type InfluencerResponse struct {
	ID             uuid.UUID               `json:"id"`
	Handle         string                  `json:"handle"`
	DisplayName    string                  `json:"display_name"`
	Email          string                  `json:"email"`
	Active         bool                    `json:"active"`
	DesiredAmounts []DesiredAmountResponse `json:"desired_amounts"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ToInfluencerResponse converts an influencer to its API representation
func ToInfluencerResponse(i *identity.Influencer) InfluencerResponse {
	amounts := make([]DesiredAmountResponse, 0, len(i.DesiredAmounts))
	for _, da := range i.DesiredAmounts {
		amounts = append(amounts, DesiredAmountResponse{
			DeliverableType: da.DeliverableType,
			Amount:          da.Amount,
			Currency:        da.Currency.String(),
		})
	}
	return InfluencerResponse{
		ID:             i.ID,
		Handle:         i.Handle,
		DisplayName:    i.DisplayName,
		Email:          i.Email,
		Active:         i.Active,
		DesiredAmounts: amounts,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
