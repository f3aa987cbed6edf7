package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/domain/order"
)

// Notifier delivers participation notifications to the people involved.
// Delivery is best-effort and runs after the triggering transaction has
// committed: a failed notification never fails the operation, so no
// method returns an error.
type Notifier interface {
	// InfluencersInvited tells influencers they were invited to an order
	InfluencersInvited(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// InvitationAccepted tells the client an influencer accepted
	InvitationAccepted(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID)

	// InvitationDeclined tells the client an influencer declined
	InvitationDeclined(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID)

	// InfluencersNotSelected tells influencers they were not selected
	InfluencersNotSelected(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// InfluencersRemoved tells influencers they were removed from an
	// active collaboration
	InfluencersRemoved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// InfluencerWithdrawn tells the client an influencer left the order
	InfluencerWithdrawn(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID)

	// MatchesConfirmed tells influencers their match was confirmed
	MatchesConfirmed(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// WorkSubmitted tells the client an influencer handed in work
	WorkSubmitted(ctx context.Context, o *order.ProductOrder, influencerID uuid.UUID)

	// SubmissionsApproved tells influencers their work was approved
	SubmissionsApproved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// SubmissionsDisapproved tells influencers their work needs rework
	SubmissionsDisapproved(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)

	// OrderFinished tells payable influencers the order has closed
	OrderFinished(ctx context.Context, o *order.ProductOrder, influencerIDs []uuid.UUID)
}

// NopNotifier discards all notifications. Used in tests and as a safe
// default when no delivery channel is configured.
type NopNotifier struct{}

func (NopNotifier) InfluencersInvited(context.Context, *order.ProductOrder, []uuid.UUID)     {}
func (NopNotifier) InvitationAccepted(context.Context, *order.ProductOrder, uuid.UUID)       {}
func (NopNotifier) InvitationDeclined(context.Context, *order.ProductOrder, uuid.UUID)       {}
func (NopNotifier) InfluencersNotSelected(context.Context, *order.ProductOrder, []uuid.UUID) {}
func (NopNotifier) InfluencersRemoved(context.Context, *order.ProductOrder, []uuid.UUID)     {}
func (NopNotifier) InfluencerWithdrawn(context.Context, *order.ProductOrder, uuid.UUID)      {}
func (NopNotifier) MatchesConfirmed(context.Context, *order.ProductOrder, []uuid.UUID)       {}
func (NopNotifier) WorkSubmitted(context.Context, *order.ProductOrder, uuid.UUID)            {}
func (NopNotifier) SubmissionsApproved(context.Context, *order.ProductOrder, []uuid.UUID)    {}
func (NopNotifier) SubmissionsDisapproved(context.Context, *order.ProductOrder, []uuid.UUID) {}
func (NopNotifier) OrderFinished(context.Context, *order.ProductOrder, []uuid.UUID)          {}
