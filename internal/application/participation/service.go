package participation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketry/backend/internal/application/notification"
	"github.com/marketry/backend/internal/domain/identity"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
	"github.com/marketry/backend/internal/domain/shared/valueobject"
)

// LifecycleService drives influencers through the collaboration flow of
// a product order: adding, inviting, matching, submission review and the
// order's own lifecycle. Every batch operation validates all named
// influencers before touching any of them, and mutations of one request
// share a single transaction.
type LifecycleService struct {
	orders         order.ProductOrderRepository
	participants   order.ParticipantRepository
	submissions    order.SubmissionRepository
	influencers    identity.InfluencerRepository
	tx             shared.TransactionManager
	notifier       notification.Notifier
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	orders order.ProductOrderRepository,
	participants order.ParticipantRepository,
	submissions order.SubmissionRepository,
	influencers identity.InfluencerRepository,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		orders:       orders,
		participants: participants,
		submissions:  submissions,
		influencers:  influencers,
		tx:           tx,
		notifier:     notification.NopNotifier{},
		logger:       logger,
	}
}

// SetNotifier sets the notification channel for participation changes
func (s *LifecycleService) SetNotifier(n notification.Notifier) {
	s.notifier = n
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *LifecycleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder creates a new product order for a client
func (s *LifecycleService) CreateOrder(ctx context.Context, clientID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	o, err := order.NewProductOrder(clientID, order.Kind(req.Kind), req.Title, order.DeliverableType(req.DeliverableType))
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		o.SetDescription(req.Description)
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetOrder retrieves an order together with its participant roster
func (s *LifecycleService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDetailResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	roster, err := s.participants.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := OrderDetailResponse{
		OrderResponse: ToOrderResponse(o),
		Participants:  make([]ParticipantResponse, 0, len(roster)),
	}
	for _, p := range roster {
		resp.Participants = append(resp.Participants, ToParticipantResponse(p, o.Kind))
	}
	return &resp, nil
}

// ListOrders retrieves orders with filtering and pagination
func (s *LifecycleService) ListOrders(ctx context.Context, filter shared.Filter) (shared.Paginated[OrderResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	page, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}

	items := make([]OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, ToOrderResponse(o))
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.PageSize), nil
}

// AddInfluencers puts influencers on the order's roster. Adding an
// influencer who is already on the roster updates their terms instead of
// creating a second row. Influencers without an explicit amount must have
// published a desired amount for the order's deliverable type.
func (s *LifecycleService) AddInfluencers(ctx context.Context, orderID uuid.UUID, req AddInfluencersRequest) ([]ParticipantResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.CanAddInfluencers() {
		return nil, shared.NewDomainError("BAD_REQUEST",
			fmt.Sprintf("Cannot add influencers to an order in status %s", o.Status))
	}

	ids := make([]uuid.UUID, 0, len(req.Influencers))
	seen := make(map[uuid.UUID]bool, len(req.Influencers))
	for _, entry := range req.Influencers {
		if seen[entry.InfluencerID] {
			return nil, shared.NewDomainError("BAD_REQUEST",
				fmt.Sprintf("Influencer %s is listed more than once", entry.InfluencerID))
		}
		seen[entry.InfluencerID] = true
		ids = append(ids, entry.InfluencerID)
	}

	known, err := s.influencers.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*identity.Influencer, len(known))
	for _, inf := range known {
		byID[inf.ID] = inf
	}
	if missing := missingIDs(ids, func(id uuid.UUID) bool { _, ok := byID[id]; return ok }); len(missing) > 0 {
		return nil, shared.NewDomainError("NOT_FOUND",
			influencerPhrase(missing, "Influencer %s does not exist", "Influencers %s do not exist"))
	}

	// Resolve terms before any write so a missing desired amount fails
	// the whole batch
	type resolved struct {
		entry AddInfluencerEntry
		terms participantTerms
	}
	noAmount := make([]uuid.UUID, 0)
	plan := make([]resolved, 0, len(req.Influencers))
	for _, entry := range req.Influencers {
		terms, ok := resolveTerms(entry, byID[entry.InfluencerID], string(o.DeliverableType))
		if !ok {
			noAmount = append(noAmount, entry.InfluencerID)
			continue
		}
		plan = append(plan, resolved{entry: entry, terms: terms})
	}
	if len(noAmount) > 0 {
		return nil, shared.NewDomainError("BAD_REQUEST",
			influencerPhrase(noAmount,
				"Influencer %s has no desired amount for this deliverable and no amount was given",
				"Influencers %s have no desired amount for this deliverable and no amount was given"))
	}

	result := make([]ParticipantResponse, 0, len(plan))
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, r := range plan {
			existing, err := s.participants.FindByOrderAndInfluencer(ctx, orderID, r.entry.InfluencerID)
			switch {
			case err == nil:
				// Duplicate add refreshes the terms regardless of how far
				// the participant already progressed
				if err := existing.UpdateTerms(r.terms.Amount, r.terms.Currency); err != nil {
					return err
				}
				if err := s.participants.Update(ctx, existing); err != nil {
					return err
				}
				result = append(result, ToParticipantResponse(existing, o.Kind))
			case isNotFound(err):
				p, err := order.NewParticipant(orderID, r.entry.InfluencerID, r.terms.Amount, r.terms.Currency)
				if err != nil {
					return err
				}
				if err := s.participants.Create(ctx, p); err != nil {
					return err
				}
				result = append(result, ToParticipantResponse(p, o.Kind))
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InviteInfluencers sends invitations to influencers on the roster.
// Inviting an already invited influencer is allowed and re-sends the
// notification without changing their status.
func (s *LifecycleService) InviteInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) error {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.CanAddInfluencers() {
		return shared.NewDomainError("BAD_REQUEST",
			fmt.Sprintf("Cannot invite influencers on an order in status %s", o.Status))
	}

	roster, err := s.loadParticipants(ctx, orderID, influencerIDs)
	if err != nil {
		return err
	}

	ineligible := make([]uuid.UUID, 0)
	for _, p := range roster {
		if !p.CanInvite() {
			ineligible = append(ineligible, p.InfluencerID)
		}
	}
	if len(ineligible) > 0 {
		return shared.NewDomainError("BAD_REQUEST",
			influencerPhrase(ineligible, "Influencer %s cannot be invited", "Influencers %s cannot be invited"))
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, p := range roster {
			if err := p.Invite(); err != nil {
				return err
			}
			if err := s.participants.Update(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.InfluencersInvited(ctx, o, influencerIDs)
	return nil
}

// AcceptInvitation records an influencer's acceptance of their invitation
func (s *LifecycleService) AcceptInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	p, err := s.loadParticipant(ctx, orderID, influencerID)
	if err != nil {
		return err
	}

	if err := p.AcceptInvitation(o.Kind); err != nil {
		return err
	}
	if err := s.participants.Update(ctx, p); err != nil {
		return err
	}

	s.notifier.InvitationAccepted(ctx, o, influencerID)
	return nil
}

// DeclineInvitation records an influencer's refusal of their invitation
func (s *LifecycleService) DeclineInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	p, err := s.loadParticipant(ctx, orderID, influencerID)
	if err != nil {
		return err
	}

	if err := p.DeclineInvitation(); err != nil {
		return err
	}
	if err := s.participants.Update(ctx, p); err != nil {
		return err
	}

	s.notifier.InvitationDeclined(ctx, o, influencerID)
	return nil
}

// RemoveInfluencers takes influencers off the order on the client's
// initiative. Influencers who never accepted their invitation end up
// NotSelected; influencers already in the working flow end up Removed.
// Participants already in a branch state (declined, withdrawn, removed
// earlier) are left untouched and do not count towards the total.
func (s *LifecycleService) RemoveInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (*RemoveInfluencersResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.AtLeast(order.StatusFinished) {
		return nil, shared.NewDomainError("BAD_REQUEST",
			fmt.Sprintf("Cannot remove influencers from an order in status %s", o.Status))
	}

	roster, err := s.loadParticipants(ctx, orderID, influencerIDs)
	if err != nil {
		return nil, err
	}

	removable := make([]*order.Participant, 0, len(roster))
	notSelected := make([]uuid.UUID, 0)
	removed := make([]uuid.UUID, 0)
	for _, p := range roster {
		if !p.Status.OnLadder() {
			continue
		}
		removable = append(removable, p)
		if p.RemovalTarget() == order.ParticipantRemoved {
			removed = append(removed, p.InfluencerID)
		} else {
			notSelected = append(notSelected, p.InfluencerID)
		}
	}

	var total int64
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, p := range removable {
			if err := p.Remove(); err != nil {
				return err
			}
			if err := s.participants.Update(ctx, p); err != nil {
				return err
			}
			total++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(notSelected) > 0 {
		s.notifier.InfluencersNotSelected(ctx, o, notSelected)
	}
	if len(removed) > 0 {
		s.notifier.InfluencersRemoved(ctx, o, removed)
	}
	return &RemoveInfluencersResponse{RemovedCount: total}, nil
}

// RemoveSelf lets an influencer leave the order on their own initiative.
// Holding an open invitation is not enough to withdraw from: the
// influencer must decline it instead.
func (s *LifecycleService) RemoveSelf(ctx context.Context, orderID, influencerID uuid.UUID) error {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	p, err := s.loadParticipant(ctx, orderID, influencerID)
	if err != nil {
		return err
	}

	if err := p.Withdraw(); err != nil {
		return err
	}
	if err := s.participants.Update(ctx, p); err != nil {
		return err
	}

	s.notifier.InfluencerWithdrawn(ctx, o, influencerID)
	return nil
}

// ConfirmMatches moves matching campaign influencers into the submission
// phase. Survey orders have no matching phase.
func (s *LifecycleService) ConfirmMatches(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) error {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.Kind.HasMatchingStep() {
		return shared.NewDomainError("BAD_REQUEST", "Survey orders have no matching phase")
	}

	roster, err := s.loadParticipants(ctx, orderID, influencerIDs)
	if err != nil {
		return err
	}

	notMatching := make([]uuid.UUID, 0)
	for _, p := range roster {
		if p.Status != order.ParticipantMatching {
			notMatching = append(notMatching, p.InfluencerID)
		}
	}
	if len(notMatching) > 0 {
		return shared.NewDomainError("BAD_REQUEST",
			influencerPhrase(notMatching, "Influencer %s is not in the matching phase", "Influencers %s are not in the matching phase"))
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, p := range roster {
			if err := p.ConfirmMatch(); err != nil {
				return err
			}
			if err := s.participants.Update(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifier.MatchesConfirmed(ctx, o, influencerIDs)
	return nil
}

// SubmitData stores an influencer's work and moves them to review. A
// resubmission after a rejection amends the stored submission in place;
// the status change and the submission write share one transaction.
func (s *LifecycleService) SubmitData(ctx context.Context, orderID, influencerID uuid.UUID, req SubmitDataRequest) (*SubmissionResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsActive() {
		return nil, shared.NewDomainError("BAD_REQUEST",
			fmt.Sprintf("Cannot submit work on an order in status %s", o.Status))
	}
	p, err := s.loadParticipant(ctx, orderID, influencerID)
	if err != nil {
		return nil, err
	}

	var sub *order.Submission
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := p.MarkSubmitted(); err != nil {
			return err
		}
		if err := s.participants.Update(ctx, p); err != nil {
			return err
		}

		existing, err := s.submissions.FindByOrderAndInfluencer(ctx, orderID, influencerID)
		switch {
		case err == nil:
			if err := existing.Amend(req.Payload); err != nil {
				return err
			}
			if err := s.submissions.Update(ctx, existing); err != nil {
				return err
			}
			sub = existing
		case isNotFound(err):
			created, err := order.NewSubmission(orderID, influencerID, req.Payload)
			if err != nil {
				return err
			}
			if err := s.submissions.Create(ctx, created); err != nil {
				return err
			}
			sub = created
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.WorkSubmitted(ctx, o, influencerID)
	resp := ToSubmissionResponse(sub)
	return &resp, nil
}

// ApproveSubmissions accepts submissions awaiting review. The named
// influencers must all be awaiting review; the approval itself then
// applies to every participant of the order awaiting review, named or
// not. Returns the number of participants approved.
func (s *LifecycleService) ApproveSubmissions(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}

	if err := s.requireReviewable(ctx, orderID, influencerIDs,
		order.ParticipantToBeApproved, order.ParticipantNotApproved); err != nil {
		return 0, err
	}

	var affected int64
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		// Previously rejected submissions are swept up alongside the
		// ones still awaiting their first review
		for _, from := range []order.ParticipantStatus{order.ParticipantToBeApproved, order.ParticipantNotApproved} {
			n, err := s.participants.UpdateStatusForOrder(ctx, orderID, from, order.ParticipantApproved)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifier.SubmissionsApproved(ctx, o, influencerIDs)
	return affected, nil
}

// DisapproveSubmissions rejects submissions awaiting review, marking
// their authors NotApproved until they resubmit. Like approval, the
// named influencers are validated but the rejection applies order-wide
// to everyone awaiting review. Rejection is no longer possible once the
// order has finished.
func (s *LifecycleService) DisapproveSubmissions(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if o.Status.AtLeast(order.StatusFinished) {
		return 0, shared.NewDomainError("FORBIDDEN",
			"Cannot disapprove submissions on a finished order")
	}

	if err := s.requireReviewable(ctx, orderID, influencerIDs,
		order.ParticipantToBeApproved); err != nil {
		return 0, err
	}

	var affected int64
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.participants.UpdateStatusForOrder(ctx, orderID,
			order.ParticipantToBeApproved, order.ParticipantNotApproved)
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifier.SubmissionsDisapproved(ctx, o, influencerIDs)
	return affected, nil
}

// StartOrder moves the order from preparation to ongoing
func (s *LifecycleService) StartOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Start(); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// FinishOrder closes the order. Approved participants become payable in
// the same transaction, so a crash never leaves a finished order with
// approved-but-unpayable influencers.
func (s *LifecycleService) FinishOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	roster, err := s.participants.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payable := make([]uuid.UUID, 0)
	for _, p := range roster {
		if p.Status == order.ParticipantApproved {
			payable = append(payable, p.InfluencerID)
		}
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := o.Finish(); err != nil {
			return err
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		_, err := s.participants.UpdateStatusForOrder(ctx, orderID,
			order.ParticipantApproved, order.ParticipantToBePaid)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	if len(payable) > 0 {
		s.notifier.OrderFinished(ctx, o, payable)
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ArchiveOrder puts a finished order into cold storage
func (s *LifecycleService) ArchiveOrder(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Archive(); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetSubmission retrieves an influencer's submission for an order
func (s *LifecycleService) GetSubmission(ctx context.Context, orderID, influencerID uuid.UUID) (*SubmissionResponse, error) {
	sub, err := s.submissions.FindByOrderAndInfluencer(ctx, orderID, influencerID)
	if err != nil {
		return nil, err
	}
	resp := ToSubmissionResponse(sub)
	return &resp, nil
}

func (s *LifecycleService) loadOrder(ctx context.Context, orderID uuid.UUID) (*order.ProductOrder, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *LifecycleService) loadParticipant(ctx context.Context, orderID, influencerID uuid.UUID) (*order.Participant, error) {
	p, err := s.participants.FindByOrderAndInfluencer(ctx, orderID, influencerID)
	if err != nil {
		if isNotFound(err) {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("Influencer %s is not a participant of this order", influencerID))
		}
		return nil, err
	}
	return p, nil
}

// loadParticipants loads the named influencers' participant rows and
// fails the whole batch if any of them is not on the roster
func (s *LifecycleService) loadParticipants(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) ([]*order.Participant, error) {
	if len(influencerIDs) == 0 {
		return nil, shared.NewDomainError("BAD_REQUEST", "No influencers given")
	}

	roster, err := s.participants.FindByOrderAndInfluencers(ctx, orderID, influencerIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[uuid.UUID]bool, len(roster))
	for _, p := range roster {
		found[p.InfluencerID] = true
	}
	if missing := missingIDs(influencerIDs, func(id uuid.UUID) bool { return found[id] }); len(missing) > 0 {
		return nil, shared.NewDomainError("BAD_REQUEST",
			influencerPhrase(missing,
				"Influencer %s is not a participant of this order",
				"Influencers %s are not participants of this order"))
	}
	return roster, nil
}

// requireReviewable checks every named influencer is on the roster and
// currently in one of the given review statuses
func (s *LifecycleService) requireReviewable(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID, allowed ...order.ParticipantStatus) error {
	roster, err := s.loadParticipants(ctx, orderID, influencerIDs)
	if err != nil {
		return err
	}
	notAwaiting := make([]uuid.UUID, 0)
	for _, p := range roster {
		ok := false
		for _, status := range allowed {
			if p.Status == status {
				ok = true
				break
			}
		}
		if !ok {
			notAwaiting = append(notAwaiting, p.InfluencerID)
		}
	}
	if len(notAwaiting) > 0 {
		return shared.NewDomainError("BAD_REQUEST",
			influencerPhrase(notAwaiting,
				"Influencer %s has no submission awaiting review",
				"Influencers %s have no submissions awaiting review"))
	}
	return nil
}

func (s *LifecycleService) publishEvents(ctx context.Context, o *order.ProductOrder) {
	if s.eventPublisher == nil {
		o.ClearDomainEvents()
		return
	}
	if err := s.eventPublisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish domain events",
			zap.String("order_id", o.ID.String()),
			zap.Error(err))
	}
	o.ClearDomainEvents()
}

// participantTerms is the amount and currency a participant joins with
type participantTerms struct {
	Amount   decimal.Decimal
	Currency valueobject.Currency
}

// resolveTerms picks the explicit amount from the request when given,
// falling back to the influencer's published desired amount for the
// order's deliverable type
func resolveTerms(entry AddInfluencerEntry, inf *identity.Influencer, deliverableType string) (participantTerms, bool) {
	if entry.Amount != nil {
		currency := valueobject.Currency(entry.Currency)
		if currency == "" {
			currency = valueobject.DefaultCurrency
		}
		return participantTerms{Amount: *entry.Amount, Currency: currency}, true
	}
	amount, currency, ok := inf.DesiredAmountFor(deliverableType)
	if !ok {
		return participantTerms{}, false
	}
	return participantTerms{Amount: amount, Currency: currency}, true
}

func isNotFound(err error) bool {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == "NOT_FOUND"
	}
	return false
}

// missingIDs returns the ids for which ok reports false, in input order
func missingIDs(ids []uuid.UUID, ok func(uuid.UUID) bool) []uuid.UUID {
	missing := make([]uuid.UUID, 0)
	for _, id := range ids {
		if !ok(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// influencerPhrase formats an error message about a set of influencers,
// picking the singular or plural template and listing the ids in a
// stable order
func influencerPhrase(ids []uuid.UUID, singular, plural string) string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	sort.Strings(strs)
	if len(strs) == 1 {
		return fmt.Sprintf(singular, strs[0])
	}
	return fmt.Sprintf(plural, strings.Join(strs, ", "))
}
