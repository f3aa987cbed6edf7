package order

import (
	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/shared"
)

// Event type constants
const (
	EventOrderCreated  = "order.created"
	EventOrderStarted  = "order.started"
	EventOrderFinished = "order.finished"
	EventOrderArchived = "order.archived"

	EventInfluencersAdded       = "order.influencers_added"
	EventInfluencersInvited     = "order.influencers_invited"
	EventInvitationAccepted     = "order.invitation_accepted"
	EventInvitationDeclined     = "order.invitation_declined"
	EventInfluencersNotSelected = "order.influencers_not_selected"
	EventInfluencersRemoved     = "order.influencers_removed"
	EventInfluencerWithdrawn    = "order.influencer_withdrawn"
	EventMatchesConfirmed       = "order.matches_confirmed"
	EventWorkSubmitted          = "order.work_submitted"
	EventSubmissionsApproved    = "order.submissions_approved"
	EventSubmissionsDisapproved = "order.submissions_disapproved"
	EventParticipantsPayable    = "order.participants_payable"
)

const aggregateTypeProductOrder = "ProductOrder"

// OrderCreatedEvent is published when a product order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
	Kind     Kind      `json:"kind"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(orderID, clientID uuid.UUID, kind Kind) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderCreated, aggregateTypeProductOrder, orderID),
		ClientID:        clientID,
		Kind:            kind,
	}
}

// OrderStartedEvent is published when an order moves to ongoing
type OrderStartedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewOrderStartedEvent creates a new order started event
func NewOrderStartedEvent(orderID, clientID uuid.UUID) *OrderStartedEvent {
	return &OrderStartedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderStarted, aggregateTypeProductOrder, orderID),
		ClientID:        clientID,
	}
}

// OrderFinishedEvent is published when an order is finished
type OrderFinishedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewOrderFinishedEvent creates a new order finished event
func NewOrderFinishedEvent(orderID, clientID uuid.UUID) *OrderFinishedEvent {
	return &OrderFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderFinished, aggregateTypeProductOrder, orderID),
		ClientID:        clientID,
	}
}

// OrderArchivedEvent is published when an order is archived
type OrderArchivedEvent struct {
	shared.BaseDomainEvent
	ClientID uuid.UUID `json:"client_id"`
}

// NewOrderArchivedEvent creates a new order archived event
func NewOrderArchivedEvent(orderID, clientID uuid.UUID) *OrderArchivedEvent {
	return &OrderArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderArchived, aggregateTypeProductOrder, orderID),
		ClientID:        clientID,
	}
}

// ParticipantsEvent is the common shape for events affecting a batch of
// influencers on one order
type ParticipantsEvent struct {
	shared.BaseDomainEvent
	InfluencerIDs []uuid.UUID `json:"influencer_ids"`
}

// NewParticipantsEvent creates a participant batch event of the given type
func NewParticipantsEvent(eventType string, orderID uuid.UUID, influencerIDs []uuid.UUID) *ParticipantsEvent {
	return &ParticipantsEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateTypeProductOrder, orderID),
		InfluencerIDs:   influencerIDs,
	}
}

// InvitationAnsweredEvent is published when a single influencer accepts
// or declines an invitation, or withdraws from the order
type InvitationAnsweredEvent struct {
	shared.BaseDomainEvent
	InfluencerID uuid.UUID `json:"influencer_id"`
}

// NewInvitationAnsweredEvent creates an event for a single influencer's answer
func NewInvitationAnsweredEvent(eventType string, orderID, influencerID uuid.UUID) *InvitationAnsweredEvent {
	return &InvitationAnsweredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateTypeProductOrder, orderID),
		InfluencerID:    influencerID,
	}
}
