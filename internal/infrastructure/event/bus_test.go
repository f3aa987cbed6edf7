package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

type captureHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *captureHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *captureHandler) EventTypes() []string {
	return h.types
}

func (h *captureHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func newTestBus(t *testing.T) *InMemoryEventBus {
	t.Helper()
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() {
		_ = bus.Stop(context.Background())
	})
	return bus
}

func TestInMemoryEventBus(t *testing.T) {
	orderID := uuid.New()
	influencerID := uuid.New()

	t.Run("delivers to type-specific handler", func(t *testing.T) {
		bus := newTestBus(t)
		h := &captureHandler{types: []string{order.EventInfluencersInvited}}
		bus.Subscribe(h)

		evt := order.NewParticipantsEvent(order.EventInfluencersInvited, orderID, []uuid.UUID{influencerID})
		require.NoError(t, bus.Publish(context.Background(), evt))

		received := h.received()
		require.Len(t, received, 1)
		assert.Equal(t, order.EventInfluencersInvited, received[0].EventType())
		assert.Equal(t, orderID, received[0].AggregateID())
	})

	t.Run("does not deliver other event types", func(t *testing.T) {
		bus := newTestBus(t)
		h := &captureHandler{types: []string{order.EventInfluencersInvited}}
		bus.Subscribe(h)

		evt := order.NewParticipantsEvent(order.EventInfluencersRemoved, orderID, []uuid.UUID{influencerID})
		require.NoError(t, bus.Publish(context.Background(), evt))

		assert.Empty(t, h.received())
	})

	t.Run("wildcard handler sees everything", func(t *testing.T) {
		bus := newTestBus(t)
		h := &captureHandler{}
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(context.Background(),
			order.NewParticipantsEvent(order.EventInfluencersInvited, orderID, []uuid.UUID{influencerID}),
			order.NewInvitationAnsweredEvent(order.EventInvitationAccepted, orderID, influencerID),
		))

		assert.Len(t, h.received(), 2)
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		bus := newTestBus(t)
		failing := &captureHandler{types: []string{order.EventWorkSubmitted}, err: errors.New("boom")}
		healthy := &captureHandler{types: []string{order.EventWorkSubmitted}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		evt := order.NewInvitationAnsweredEvent(order.EventWorkSubmitted, orderID, influencerID)
		require.NoError(t, bus.Publish(context.Background(), evt))

		assert.Len(t, healthy.received(), 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := newTestBus(t)
		panicking := &captureHandler{types: []string{order.EventWorkSubmitted}, panics: true}
		healthy := &captureHandler{types: []string{order.EventWorkSubmitted}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		evt := order.NewInvitationAnsweredEvent(order.EventWorkSubmitted, orderID, influencerID)
		require.NoError(t, bus.Publish(context.Background(), evt))

		assert.Len(t, healthy.received(), 1)
	})

	t.Run("unsubscribed handler stops receiving", func(t *testing.T) {
		bus := newTestBus(t)
		h := &captureHandler{types: []string{order.EventInfluencersInvited}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		evt := order.NewParticipantsEvent(order.EventInfluencersInvited, orderID, []uuid.UUID{influencerID})
		require.NoError(t, bus.Publish(context.Background(), evt))

		assert.Empty(t, h.received())
	})
}
