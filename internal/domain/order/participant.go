package order

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/domain/shared/valueobject"
)

// Participant links an influencer to a product order and tracks their
// progress through the collaboration flow. One row per (order, influencer)
// pair.
type Participant struct {
	shared.BaseEntity
	OrderID      uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_order_influencer;index"`
	InfluencerID uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex:idx_order_influencer;index"`
	Status       ParticipantStatus    `gorm:"not null;default:0;index"`
	AgreedAmount decimal.Decimal      `gorm:"type:decimal(15,2);not null"`
	Currency     valueobject.Currency `gorm:"type:varchar(3);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (Participant) TableName() string {
	return "participants"
}

// NewParticipant creates a participant in the Added state with the
// influencer's desired amount as the initial agreed amount
func NewParticipant(orderID, influencerID uuid.UUID, amount decimal.Decimal, currency valueobject.Currency) (*Participant, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID is required")
	}
	if influencerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Influencer ID is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Agreed amount cannot be negative")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid currency: %s", currency))
	}

	return &Participant{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      orderID,
		InfluencerID: influencerID,
		Status:       ParticipantAdded,
		AgreedAmount: amount,
		Currency:     currency,
	}, nil
}

// UpdateTerms refreshes the agreed amount and currency in place. The
// participant's status is left untouched.
func (p *Participant) UpdateTerms(amount decimal.Decimal, currency valueobject.Currency) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Agreed amount cannot be negative")
	}
	p.AgreedAmount = amount
	if currency != "" {
		if !currency.IsValid() {
			return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid currency: %s", currency))
		}
		p.Currency = currency
	}
	return nil
}

// CanInvite reports whether the participant may receive an invitation.
// Re-inviting an already invited participant is allowed and is a no-op
// on status.
func (p *Participant) CanInvite() bool {
	return p.Status == ParticipantAdded || p.Status == ParticipantInvited
}

// Invite moves the participant into the Invited state. Inviting an
// already invited participant keeps the status unchanged.
func (p *Participant) Invite() error {
	if !p.CanInvite() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot invite participant in status %s", p.Status))
	}
	p.Status = ParticipantInvited
	return nil
}

// AcceptInvitation moves an invited participant into the working flow.
// Campaign participants enter the matching phase; survey participants go
// straight to answering.
func (p *Participant) AcceptInvitation(kind Kind) error {
	if p.Status != ParticipantInvited {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot accept invitation in status %s", p.Status))
	}
	if kind.HasMatchingStep() {
		p.Status = ParticipantMatching
	} else {
		p.Status = ParticipantToBeSubmitted
	}
	return nil
}

// DeclineInvitation marks an invited participant as declined
func (p *Participant) DeclineInvitation() error {
	if p.Status != ParticipantInvited {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot decline invitation in status %s", p.Status))
	}
	p.Status = ParticipantDeclined
	return nil
}

// ConfirmMatch moves a matching participant to the submission phase.
// Only campaign orders have a matching phase.
func (p *Participant) ConfirmMatch() error {
	if p.Status != ParticipantMatching {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot confirm match in status %s", p.Status))
	}
	p.Status = ParticipantToBeSubmitted
	return nil
}

// MarkSubmitted records that the participant handed in their work and
// awaits review. A participant whose submission was rejected may
// resubmit directly from NotApproved.
func (p *Participant) MarkSubmitted() error {
	if p.Status != ParticipantToBeSubmitted && p.Status != ParticipantNotApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot submit in status %s", p.Status))
	}
	p.Status = ParticipantToBeApproved
	return nil
}

// Approve accepts the participant's submission. A previously rejected
// submission can be approved without a resubmission round.
func (p *Participant) Approve() error {
	if p.Status != ParticipantToBeApproved && p.Status != ParticipantNotApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot approve in status %s", p.Status))
	}
	p.Status = ParticipantApproved
	return nil
}

// Disapprove rejects the participant's submission. The participant stays
// in NotApproved until they resubmit or the client approves after all.
func (p *Participant) Disapprove() error {
	if p.Status != ParticipantToBeApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot disapprove in status %s", p.Status))
	}
	p.Status = ParticipantNotApproved
	return nil
}

// Withdraw lets the influencer leave the order on their own initiative.
// An influencer who was merely added cannot withdraw from something they
// never joined, and one holding an open invitation must decline it
// instead.
func (p *Participant) Withdraw() error {
	if p.Status.Before(ParticipantInvited) {
		return shared.NewDomainError("BAD_REQUEST",
			"Influencer has not been invited to this order")
	}
	if p.Status == ParticipantInvited {
		return shared.NewDomainError("FORBIDDEN",
			"Influencer must decline the invitation instead of withdrawing")
	}
	p.Status = ParticipantWithdrawn
	return nil
}

// HasApplied reports whether the influencer made it past matching into
// the working part of the flow
func (p *Participant) HasApplied() bool {
	return p.Status.HasApplied()
}

// RemovalTarget returns the branch state a client-side removal puts this
// participant in. Influencers taken out before the collaboration started
// were never selected; the rest are removed from an active collaboration.
func (p *Participant) RemovalTarget() ParticipantStatus {
	if p.HasApplied() {
		return ParticipantRemoved
	}
	return ParticipantNotSelected
}

// Remove moves the participant into the branch state RemovalTarget
// names. Only ladder participants can be removed; participants already
// in a branch state stay where they are.
func (p *Participant) Remove() error {
	if !p.Status.OnLadder() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot remove participant in status %s", p.Status))
	}
	p.Status = p.RemovalTarget()
	return nil
}
