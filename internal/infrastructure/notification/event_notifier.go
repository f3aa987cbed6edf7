package notification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/notification"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// EventNotifier delivers participation notifications by publishing domain
// events on the event bus, where delivery channels (email, push, webhooks)
// subscribe. Delivery is best-effort: failures are logged, never returned.
//
// Repeated identical notifications within the dedupe window are
// suppressed, except invitations, which are deliberately re-sent on every
// re-invite.
type EventNotifier struct {
	publisher shared.EventPublisher
	dedupe    shared.IdempotencyStore
	window    time.Duration
	logger    *zap.Logger
}

// NewEventNotifier creates a new EventNotifier. A nil dedupe store
// disables deduplication.
func NewEventNotifier(publisher shared.EventPublisher, dedupe shared.IdempotencyStore, window time.Duration, logger *zap.Logger) *EventNotifier {
	if window <= 0 {
		window = time.Hour
	}
	return &EventNotifier{
		publisher: publisher,
		dedupe:    dedupe,
		window:    window,
		logger:    logger,
	}
}

// InfluencersInvited publishes an invitation notification. Never deduped:
// a re-invite must reach the influencer again.
func (n *EventNotifier) InfluencersInvited(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publish(ctx, order.NewParticipantsEvent(order.EventInfluencersInvited, o.ID, influencerIDs))
}

func (n *EventNotifier) InvitationAccepted(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID) {
	n.publishDeduped(ctx, order.NewInvitationAnsweredEvent(order.EventInvitationAccepted, o.ID, influencerID),
		dedupeKey(order.EventInvitationAccepted, o.ID, influencerID))
}

func (n *EventNotifier) InvitationDeclined(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID) {
	n.publishDeduped(ctx, order.NewInvitationAnsweredEvent(order.EventInvitationDeclined, o.ID, influencerID),
		dedupeKey(order.EventInvitationDeclined, o.ID, influencerID))
}

func (n *EventNotifier) InfluencersNotSelected(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publishDeduped(ctx, order.NewParticipantsEvent(order.EventInfluencersNotSelected, o.ID, influencerIDs),
		dedupeKey(order.EventInfluencersNotSelected, o.ID, influencerIDs...))
}

func (n *EventNotifier) InfluencersRemoved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publishDeduped(ctx, order.NewParticipantsEvent(order.EventInfluencersRemoved, o.ID, influencerIDs),
		dedupeKey(order.EventInfluencersRemoved, o.ID, influencerIDs...))
}

func (n *EventNotifier) InfluencerWithdrawn(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID) {
	n.publishDeduped(ctx, order.NewInvitationAnsweredEvent(order.EventInfluencerWithdrawn, o.ID, influencerID),
		dedupeKey(order.EventInfluencerWithdrawn, o.ID, influencerID))
}

func (n *EventNotifier) MatchesConfirmed(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publishDeduped(ctx, order.NewParticipantsEvent(order.EventMatchesConfirmed, o.ID, influencerIDs),
		dedupeKey(order.EventMatchesConfirmed, o.ID, influencerIDs...))
}

// WorkSubmitted publishes a submission notification. Never deduped: each
// resubmission is news for the client.
func (n *EventNotifier) WorkSubmitted(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID) {
	n.publish(ctx, order.NewInvitationAnsweredEvent(order.EventWorkSubmitted, o.ID, influencerID))
}

func (n *EventNotifier) SubmissionsApproved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publish(ctx, order.NewParticipantsEvent(order.EventSubmissionsApproved, o.ID, influencerIDs))
}

func (n *EventNotifier) SubmissionsDisapproved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publish(ctx, order.NewParticipantsEvent(order.EventSubmissionsDisapproved, o.ID, influencerIDs))
}

func (n *EventNotifier) OrderFinished(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID) {
	n.publishDeduped(ctx, order.NewParticipantsEvent(order.EventParticipantsPayable, o.ID, influencerIDs),
		dedupeKey(order.EventParticipantsPayable, o.ID, influencerIDs...))
}

func (n *EventNotifier) publish(ctx context.Context, event shared.DomainEvent) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("failed to publish notification event",
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	}
}

func (n *EventNotifier) publishDeduped(ctx context.Context, event shared.DomainEvent, key string) {
	if n.dedupe != nil {
		fresh, err := n.dedupe.MarkProcessed(ctx, key, n.window)
		if err != nil {
			// Dedupe failure must not swallow the notification
			n.logger.Warn("notification dedupe check failed",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		} else if !fresh {
			n.logger.Debug("duplicate notification suppressed",
				zap.String("event_type", event.EventType()))
			return
		}
	}
	n.publish(ctx, event)
}

// dedupeKey builds a stable key for one notification: event type, order
// and the sorted influencer set
func dedupeKey(eventType string, orderID uuid.UUID, influencerIDs ...uuid.UUID) string {
	ids := make([]string, 0, len(influencerIDs))
	for _, id := range influencerIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(eventType + ":" + orderID.String() + ":" + strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}

var _ notification.Notifier = (*EventNotifier)(nil)
