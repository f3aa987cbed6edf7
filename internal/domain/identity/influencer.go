package identity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/domain/shared/valueobject"
)

// Influencer is a creator who can be matched to product orders
type Influencer struct {
	shared.BaseEntity
	Handle      string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(200);not null"`
	Active      bool   `gorm:"not null;default:true"`

	DesiredAmounts []DesiredAmount `gorm:"foreignKey:InfluencerID"`
}

// TableName returns the table name for GORM
func (Influencer) TableName() string {
	return "influencers"
}

// NewInfluencer creates a new active influencer
func NewInfluencer(handle, displayName, email string) (*Influencer, error) {
	if handle == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Handle is required")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display name is required")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	return &Influencer{
		BaseEntity:  shared.NewBaseEntity(),
		Handle:      handle,
		DisplayName: displayName,
		Email:       email,
		Active:      true,
	}, nil
}

// DesiredAmount is an influencer's asking price for one deliverable type
type DesiredAmount struct {
	shared.BaseEntity
	InfluencerID    uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_influencer_deliverable;index"`
	DeliverableType string               `gorm:"type:varchar(20);not null;uniqueIndex:idx_influencer_deliverable"`
	Amount          decimal.Decimal      `gorm:"type:decimal(15,2);not null"`
	Currency        valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (DesiredAmount) TableName() string {
	return "desired_amounts"
}

// SetDesiredAmount records or replaces the asking price for one
// deliverable type
func (i *Influencer) SetDesiredAmount(deliverableType string, amount decimal.Decimal, currency valueobject.Currency) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Desired amount cannot be negative")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid currency: %s", currency))
	}
	for idx := range i.DesiredAmounts {
		if i.DesiredAmounts[idx].DeliverableType == deliverableType {
			i.DesiredAmounts[idx].Amount = amount
			i.DesiredAmounts[idx].Currency = currency
			return nil
		}
	}
	i.DesiredAmounts = append(i.DesiredAmounts, DesiredAmount{
		BaseEntity:      shared.NewBaseEntity(),
		InfluencerID:    i.ID,
		DeliverableType: deliverableType,
		Amount:          amount,
		Currency:        currency,
	})
	return nil
}

// DesiredAmountFor returns the asking price for the given deliverable
// type, if the influencer has published one
func (i *Influencer) DesiredAmountFor(deliverableType string) (decimal.Decimal, valueobject.Currency, bool) {
	for _, da := range i.DesiredAmounts {
		if da.DeliverableType == deliverableType {
			return da.Amount, da.Currency, true
		}
	}
	return decimal.Zero, "", false
}
