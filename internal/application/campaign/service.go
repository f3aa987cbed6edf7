package campaign

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketry/backend/internal/application/participation"
	"github.com/marketry/backend/internal/domain/order"
	"github.com/marketry/backend/internal/domain/shared"
)

// Service exposes the campaign flavour of the participation flow. It
// checks the order really is a campaign and delegates to the shared
// lifecycle service, which is where matching confirmation lives.
type Service struct {
	lifecycle *participation.LifecycleService
	orders    order.ProductOrderRepository
}

// NewService creates a new campaign Service
func NewService(lifecycle *participation.LifecycleService, orders order.ProductOrderRepository) *Service {
	return &Service{lifecycle: lifecycle, orders: orders}
}

// CreateCampaign creates a new campaign order for a client
func (s *Service) CreateCampaign(ctx context.Context, clientID uuid.UUID, req participation.CreateOrderRequest) (*participation.OrderResponse, error) {
	req.Kind = string(order.KindCampaign)
	return s.lifecycle.CreateOrder(ctx, clientID, req)
}

// GetCampaign retrieves a campaign with its participant roster
func (s *Service) GetCampaign(ctx context.Context, orderID uuid.UUID) (*participation.OrderDetailResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.GetOrder(ctx, orderID)
}

// ListCampaigns retrieves campaigns with filtering and pagination
func (s *Service) ListCampaigns(ctx context.Context, filter shared.Filter) (shared.Paginated[participation.OrderResponse], error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["kind"] = string(order.KindCampaign)
	return s.lifecycle.ListOrders(ctx, filter)
}

// AddInfluencers puts influencers on the campaign roster
func (s *Service) AddInfluencers(ctx context.Context, orderID uuid.UUID, req participation.AddInfluencersRequest) ([]participation.ParticipantResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.AddInfluencers(ctx, orderID, req)
}

// InviteInfluencers sends campaign invitations
func (s *Service) InviteInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) error {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.InviteInfluencers(ctx, orderID, influencerIDs)
}

// ConfirmMatches confirms matches for accepted influencers
func (s *Service) ConfirmMatches(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) error {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.ConfirmMatches(ctx, orderID, influencerIDs)
}

// RemoveInfluencers takes influencers off the campaign
func (s *Service) RemoveInfluencers(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (*participation.RemoveInfluencersResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.RemoveInfluencers(ctx, orderID, influencerIDs)
}

// ApproveSubmissions accepts content awaiting review
func (s *Service) ApproveSubmissions(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return 0, err
	}
	return s.lifecycle.ApproveSubmissions(ctx, orderID, influencerIDs)
}

// DisapproveSubmissions rejects submitted content
func (s *Service) DisapproveSubmissions(ctx context.Context, orderID uuid.UUID, influencerIDs []uuid.UUID) (int64, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return 0, err
	}
	return s.lifecycle.DisapproveSubmissions(ctx, orderID, influencerIDs)
}

// AcceptInvitation records an influencer's acceptance
func (s *Service) AcceptInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.AcceptInvitation(ctx, orderID, influencerID)
}

// DeclineInvitation records an influencer's refusal
func (s *Service) DeclineInvitation(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.DeclineInvitation(ctx, orderID, influencerID)
}

// Withdraw lets an influencer leave the campaign
func (s *Service) Withdraw(ctx context.Context, orderID, influencerID uuid.UUID) error {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return err
	}
	return s.lifecycle.RemoveSelf(ctx, orderID, influencerID)
}

// SubmitWork stores an influencer's content for review
func (s *Service) SubmitWork(ctx context.Context, orderID, influencerID uuid.UUID, req participation.SubmitDataRequest) (*participation.SubmissionResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.SubmitData(ctx, orderID, influencerID, req)
}

// GetSubmission retrieves an influencer's submitted content
func (s *Service) GetSubmission(ctx context.Context, orderID, influencerID uuid.UUID) (*participation.SubmissionResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.GetSubmission(ctx, orderID, influencerID)
}

// StartCampaign moves the campaign from preparation to ongoing
func (s *Service) StartCampaign(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.StartOrder(ctx, orderID)
}

// FinishCampaign closes the campaign and queues approved work for payout
func (s *Service) FinishCampaign(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.FinishOrder(ctx, orderID)
}

// ArchiveCampaign puts a finished campaign into the archive
func (s *Service) ArchiveCampaign(ctx context.Context, orderID uuid.UUID) (*participation.OrderResponse, error) {
	if err := s.requireCampaign(ctx, orderID); err != nil {
		return nil, err
	}
	return s.lifecycle.ArchiveOrder(ctx, orderID)
}

func (s *Service) requireCampaign(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.Kind != order.KindCampaign {
		return shared.NewDomainError("BAD_REQUEST", "Order is not a campaign")
	}
	return nil
}
