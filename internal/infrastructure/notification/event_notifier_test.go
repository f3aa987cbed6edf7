package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/infrastructure/cache"
)

type capturePublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *capturePublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *capturePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func testOrder(t *testing.T, kind order.Kind) *order.ProductOrder {
	t.Helper()
	deliverable := order.DeliverablePost
	if kind == order.KindSurvey {
		deliverable = order.DeliverableAnswers
	}
	o, err := order.NewProductOrder(uuid.New(), kind, "Spring launch", deliverable)
	require.NoError(t, err)
	return o
}

func TestEventNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes participant events", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, nil, time.Hour, zap.NewNop())
		o := testOrder(t, order.KindCampaign)

		n.InfluencersInvited(ctx, o, []uuid.UUID{uuid.New()})
		n.InvitationAccepted(ctx, o, uuid.New())

		assert.Equal(t, []string{
			order.EventInfluencersInvited,
			order.EventInvitationAccepted,
		}, pub.types())
	})

	t.Run("suppresses duplicate removals within the window", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, cache.NewInMemoryIdempotencyStore(), time.Hour, zap.NewNop())
		o := testOrder(t, order.KindCampaign)
		ids := []uuid.UUID{uuid.New(), uuid.New()}

		n.InfluencersRemoved(ctx, o, ids)
		n.InfluencersRemoved(ctx, o, ids)

		assert.Equal(t, []string{order.EventInfluencersRemoved}, pub.types())
	})

	t.Run("dedupe key covers the influencer set", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, cache.NewInMemoryIdempotencyStore(), time.Hour, zap.NewNop())
		o := testOrder(t, order.KindCampaign)

		n.InfluencersRemoved(ctx, o, []uuid.UUID{uuid.New()})
		n.InfluencersRemoved(ctx, o, []uuid.UUID{uuid.New()})

		// Different sets are different notifications
		assert.Len(t, pub.types(), 2)
	})

	t.Run("invitations are never deduped", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, cache.NewInMemoryIdempotencyStore(), time.Hour, zap.NewNop())
		o := testOrder(t, order.KindCampaign)
		ids := []uuid.UUID{uuid.New()}

		n.InfluencersInvited(ctx, o, ids)
		n.InfluencersInvited(ctx, o, ids)

		assert.Len(t, pub.types(), 2)
	})

	t.Run("resubmissions are never deduped", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, cache.NewInMemoryIdempotencyStore(), time.Hour, zap.NewNop())
		o := testOrder(t, order.KindSurvey)
		influencerID := uuid.New()

		n.WorkSubmitted(ctx, o, influencerID)
		n.WorkSubmitted(ctx, o, influencerID)

		assert.Len(t, pub.types(), 2)
	})

	t.Run("order finished publishes payable roster", func(t *testing.T) {
		pub := &capturePublisher{}
		n := NewEventNotifier(pub, nil, time.Hour, zap.NewNop())
		o := testOrder(t, order.KindCampaign)

		n.OrderFinished(ctx, o, []uuid.UUID{uuid.New(), uuid.New()})

		require.Len(t, pub.events, 1)
		evt, ok := pub.events[0].(*order.ParticipantsEvent)
		require.True(t, ok)
		assert.Equal(t, order.EventParticipantsPayable, evt.EventType())
		assert.Len(t, evt.InfluencerIDs, 2)
	})
}

func TestDedupeKey(t *testing.T) {
	orderID := uuid.New()
	a, b := uuid.New(), uuid.New()

	t.Run("order of ids does not matter", func(t *testing.T) {
		assert.Equal(t,
			dedupeKey("order.influencers_removed", orderID, a, b),
			dedupeKey("order.influencers_removed", orderID, b, a))
	})

	t.Run("event type is part of the key", func(t *testing.T) {
		assert.NotEqual(t,
			dedupeKey("order.influencers_removed", orderID, a),
			dedupeKey("order.influencers_not_selected", orderID, a))
	})
}
