package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/shared"
)

// DeliverableType names what the influencers are expected to produce
type DeliverableType string

const (
	DeliverablePost    DeliverableType = "POST"
	DeliverableStory   DeliverableType = "STORY"
	DeliverableVideo   DeliverableType = "VIDEO"
	DeliverableAnswers DeliverableType = "ANSWERS"
)

// IsValid checks if the deliverable type is supported
func (d DeliverableType) IsValid() bool {
	switch d {
	case DeliverablePost, DeliverableStory, DeliverableVideo, DeliverableAnswers:
		return true
	}
	return false
}

// ProductOrder is a client's campaign or survey. It owns the roster of
// participating influencers and gates which lifecycle operations are
// allowed at each stage.
type ProductOrder struct {
	shared.BaseAggregateRoot
	ClientID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind            Kind            `gorm:"type:varchar(20);not null;index"`
	Title           string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	DeliverableType DeliverableType `gorm:"type:varchar(20);not null"`
	Status          Status          `gorm:"not null;default:0;index"`
	StartedAt       *time.Time
	FinishedAt      *time.Time
	ArchivedAt      *time.Time
}

// TableName returns the table name for GORM
func (ProductOrder) TableName() string {
	return "product_orders"
}

// NewProductOrder creates a product order in preparation
func NewProductOrder(clientID uuid.UUID, kind Kind, title string, deliverableType DeliverableType) (*ProductOrder, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client ID is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid order kind: %s", kind))
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if !deliverableType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid deliverable type: %s", deliverableType))
	}
	if kind == KindSurvey && deliverableType != DeliverableAnswers {
		return nil, shared.NewDomainError("INVALID_INPUT", "Survey orders only accept the ANSWERS deliverable")
	}

	o := &ProductOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Kind:              kind,
		Title:             title,
		DeliverableType:   deliverableType,
		Status:            StatusInPreparation,
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o.ID, clientID, kind))
	return o, nil
}

// SetDescription updates the free-form description
func (o *ProductOrder) SetDescription(description string) {
	o.Description = description
}

// SetDeliverableType changes the expected deliverable while the order is
// still in preparation
func (o *ProductOrder) SetDeliverableType(deliverableType DeliverableType) error {
	if o.Status != StatusInPreparation {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change deliverable type in status %s", o.Status))
	}
	if !deliverableType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid deliverable type: %s", deliverableType))
	}
	if o.Kind == KindSurvey && deliverableType != DeliverableAnswers {
		return shared.NewDomainError("INVALID_INPUT", "Survey orders only accept the ANSWERS deliverable")
	}
	o.DeliverableType = deliverableType
	return nil
}

// CanAddInfluencers reports whether the roster is still open for new
// influencers
func (o *ProductOrder) CanAddInfluencers() bool {
	return o.Status == StatusInPreparation || o.Status == StatusOnGoing
}

// IsActive reports whether participant work may still progress
func (o *ProductOrder) IsActive() bool {
	return o.Status == StatusOnGoing
}

// Start moves the order from preparation to ongoing
func (o *ProductOrder) Start() error {
	if o.Status != StatusInPreparation {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot start order in status %s", o.Status))
	}
	now := time.Now()
	o.Status = StatusOnGoing
	o.StartedAt = &now
	o.AddDomainEvent(NewOrderStartedEvent(o.ID, o.ClientID))
	return nil
}

// Finish closes the order for new work. Approved participants become
// payable as part of the same operation.
func (o *ProductOrder) Finish() error {
	if o.Status != StatusOnGoing {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot finish order in status %s", o.Status))
	}
	now := time.Now()
	o.Status = StatusFinished
	o.FinishedAt = &now
	o.AddDomainEvent(NewOrderFinishedEvent(o.ID, o.ClientID))
	return nil
}

// Archive puts a finished order into cold storage
func (o *ProductOrder) Archive() error {
	if o.Status != StatusFinished {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot archive order in status %s", o.Status))
	}
	now := time.Now()
	o.Status = StatusArchived
	o.ArchivedAt = &now
	o.AddDomainEvent(NewOrderArchivedEvent(o.ID, o.ClientID))
	return nil
}
